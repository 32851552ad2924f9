package models

import (
	"time"

	"github.com/julianstephens/worthy/internal/constants"
)

// CustomMood is a user-defined mood descriptor.
type CustomMood struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	IconName string `json:"iconName"`
}

// AppSettings is the per-installation settings record.
type AppSettings struct {
	DarkMode        bool         `json:"darkMode"`
	UserName        string       `json:"userName"`
	ReminderEnabled bool         `json:"reminderEnabled"`
	ReminderTime    string       `json:"reminderTime"` // HH:MM format
	CustomMoods     []CustomMood `json:"customMoods"`
	CustomTags      []string     `json:"customTags"`
	LastBackupDate  int64        `json:"lastBackupDate"` // Unix milliseconds
}

// DefaultSettings returns the record used before settings are ever written.
// LastBackupDate is set to now so a fresh installation is not reported as
// overdue for a backup.
func DefaultSettings(now time.Time) AppSettings {
	return AppSettings{
		DarkMode:        constants.DefaultDarkMode,
		UserName:        constants.DefaultUserName,
		ReminderEnabled: constants.DefaultReminderEnabled,
		ReminderTime:    constants.DefaultReminderTime,
		CustomMoods:     []CustomMood{},
		CustomTags:      []string{},
		LastBackupDate:  now.UnixMilli(),
	}
}

// LastBackup returns LastBackupDate as a time.
func (s AppSettings) LastBackup() time.Time {
	return time.UnixMilli(s.LastBackupDate)
}

// HasCustomTag reports whether tag was already added by the user.
func (s AppSettings) HasCustomTag(tag string) bool {
	for _, t := range s.CustomTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Normalize replaces nil collections with empty ones so the record
// serializes the same way whether or not it was ever modified.
func (s *AppSettings) Normalize() {
	if s.CustomMoods == nil {
		s.CustomMoods = []CustomMood{}
	}
	if s.CustomTags == nil {
		s.CustomTags = []string{}
	}
}
