package constants

import "time"

const (
	AppName            = "worthy"
	JournalTitle       = "日记"
	DefaultDataPath    = "~/.local/share/worthy/worthy.db"
	DefaultConfigFile  = "~/.config/worthy/config.yaml"
	Version            = "v0.3.0"
	LockfileSuffix     = ".lock"
	LogDirName         = "logs"
	LogFileName        = "worthy.log"
	JSONEngineSuffix   = ".json"
	EngineSQLite       = "sqlite"
	EngineJSON         = "json"
	ImportMaxBodyBytes = 64 << 20

	// DateFormat is the calendar date stored on every entry (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the reminder time format (HH:MM)
	TimeFormat = "15:04"

	// Export document constants
	ExportFormatVersion = 1
	ExportIndent        = "  "

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "worthiness-journal-"
	BackupFileSuffix = ".json"
	BackupStaleAfter = 3 * 24 * time.Hour

	// Mood score bands
	MoodScoreMin     = 0
	MoodScoreMax     = 100
	MoodScoreDefault = 50
	SadMaxScore      = 35
	CalmMaxScore     = 65

	// Stats constants
	TopWordsLimit  = 20
	MoodCloudLimit = 20

	// Default settings values
	DefaultUserName        = "Friend"
	DefaultDarkMode        = false
	DefaultReminderEnabled = false
	DefaultReminderTime    = "20:00"

	// Settings keys
	SettingDarkMode        = "dark_mode"
	SettingUserName        = "user_name"
	SettingReminderEnabled = "reminder_enabled"
	SettingReminderTime    = "reminder_time"
	SettingCustomMoods     = "custom_moods"
	SettingCustomTags      = "custom_tags"
	SettingLastBackupDate  = "last_backup_date"
)

// DefaultTags are the tags offered to every user before any custom tag is added.
var DefaultTags = []string{
	"自我关怀", "陌生人的善意", "家人", "工作成就",
	"自然", "小确幸", "友情", "学习成长", "休息",
}

// IsDefaultTag reports whether tag is one of DefaultTags.
func IsDefaultTag(tag string) bool {
	for _, t := range DefaultTags {
		if t == tag {
			return true
		}
	}
	return false
}
