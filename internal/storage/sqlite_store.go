package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/logger"
	"github.com/julianstephens/worthy/internal/migration"
	"github.com/julianstephens/worthy/internal/models"
	"github.com/julianstephens/worthy/internal/records"
	"github.com/julianstephens/worthy/migrations"
)

type SQLiteStore struct {
	path  string
	db    *sql.DB
	clock func() time.Time
}

func NewSQLiteStore(path string, opts ...Option) *SQLiteStore {
	o := buildOptions(opts)
	return &SQLiteStore{
		path:  path,
		clock: o.clock,
	}
}

// Open creates the database file and its directory if needed and brings
// the schema up to date. Calling Open on an open store does nothing.
func (s *SQLiteStore) Open() error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %w", ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %w", ErrStorageUnavailable, err)
	}
	// One connection keeps every write in this process serialized.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("%w: failed to open database: %w", ErrStorageUnavailable, err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return fmt.Errorf("%w: failed to configure database: %w", ErrStorageUnavailable, err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return fmt.Errorf("%w: failed to run migrations: %w", ErrStorageUnavailable, err)
	}

	s.db = db
	logger.Debug("Opened entry store", "engine", constants.EngineSQLite, "path", s.path)
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func runMigrations(db *sql.DB) error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(db, subFS)
	_, err = runner.Apply(logger.Info)
	return err
}

func (s *SQLiteStore) Engine() string {
	return constants.EngineSQLite
}

func (s *SQLiteStore) GetDataPath() string {
	return s.path
}

func (s *SQLiteStore) PutEntry(entry models.DiaryEntry) error {
	if s.db == nil {
		return ErrNotOpen
	}

	data, err := records.Encode(entry)
	if err != nil {
		return fmt.Errorf("%w: failed to encode entry %s: %w", ErrWriteFailed, entry.ID, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO entries (id, timestamp, date, mood, record_version, data)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			timestamp = excluded.timestamp,
			date = excluded.date,
			mood = excluded.mood,
			record_version = excluded.record_version,
			data = excluded.data`,
		entry.ID, entry.Timestamp, entry.Date, string(entry.Mood), records.CurrentVersion, string(data),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to save entry %s: %w", ErrWriteFailed, entry.ID, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteEntry(id string) error {
	if s.db == nil {
		return ErrNotOpen
	}
	if _, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id); err != nil {
		return fmt.Errorf("%w: failed to delete entry %s: %w", ErrWriteFailed, id, err)
	}
	return nil
}

func (s *SQLiteStore) ListEntries() ([]models.DiaryEntry, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.Query("SELECT id, record_version, data FROM entries ORDER BY timestamp DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.DiaryEntry, 0)
	for rows.Next() {
		var id, data string
		var version int
		if err := rows.Scan(&id, &version, &data); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entry, err := records.UpgradeEntry([]byte(data), version)
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %s: %w", id, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

func (s *SQLiteStore) GetSettings() (models.AppSettings, error) {
	if s.db == nil {
		return models.AppSettings{}, ErrNotOpen
	}

	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.AppSettings{}, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := models.DefaultSettings(s.clock())
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.AppSettings{}, fmt.Errorf("failed to scan setting: %w", err)
		}
		if err := applySetting(&settings, key, value); err != nil {
			return models.AppSettings{}, err
		}
	}
	if err := rows.Err(); err != nil {
		return models.AppSettings{}, fmt.Errorf("failed to iterate settings: %w", err)
	}

	settings.Normalize()
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.AppSettings) error {
	if s.db == nil {
		return ErrNotOpen
	}

	values, err := settingValues(settings)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrWriteFailed, err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	defer stmt.Close()

	for _, kv := range values {
		if _, err := stmt.Exec(kv[0], kv[1]); err != nil {
			return fmt.Errorf("%w: failed to save setting %s: %w", ErrWriteFailed, kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit settings: %w", ErrWriteFailed, err)
	}
	return nil
}

// settingValues flattens settings into key/value rows. Lists are stored as
// JSON arrays.
func settingValues(settings models.AppSettings) ([][2]string, error) {
	settings.Normalize()

	moods, err := json.Marshal(settings.CustomMoods)
	if err != nil {
		return nil, fmt.Errorf("failed to encode custom moods: %w", err)
	}
	tags, err := json.Marshal(settings.CustomTags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode custom tags: %w", err)
	}

	return [][2]string{
		{constants.SettingDarkMode, strconv.FormatBool(settings.DarkMode)},
		{constants.SettingUserName, settings.UserName},
		{constants.SettingReminderEnabled, strconv.FormatBool(settings.ReminderEnabled)},
		{constants.SettingReminderTime, settings.ReminderTime},
		{constants.SettingCustomMoods, string(moods)},
		{constants.SettingCustomTags, string(tags)},
		{constants.SettingLastBackupDate, strconv.FormatInt(settings.LastBackupDate, 10)},
	}, nil
}

// applySetting sets the field stored under key. Unknown keys are ignored.
func applySetting(settings *models.AppSettings, key, value string) error {
	var err error
	switch key {
	case constants.SettingDarkMode:
		settings.DarkMode = value == "true"
	case constants.SettingUserName:
		settings.UserName = value
	case constants.SettingReminderEnabled:
		settings.ReminderEnabled = value == "true"
	case constants.SettingReminderTime:
		settings.ReminderTime = value
	case constants.SettingCustomMoods:
		err = json.Unmarshal([]byte(value), &settings.CustomMoods)
	case constants.SettingCustomTags:
		err = json.Unmarshal([]byte(value), &settings.CustomTags)
	case constants.SettingLastBackupDate:
		settings.LastBackupDate, err = strconv.ParseInt(value, 10, 64)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", key, err)
	}
	return nil
}
