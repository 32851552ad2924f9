package storage

import "github.com/julianstephens/worthy/internal/models"

// EntryStore holds diary entries keyed by id and ordered by creation time.
type EntryStore interface {
	// PutEntry inserts the entry or overwrites the one with the same id.
	PutEntry(models.DiaryEntry) error
	// DeleteEntry removes the entry with id. An absent id is not an error.
	DeleteEntry(id string) error
	// ListEntries returns every entry, newest first.
	ListEntries() ([]models.DiaryEntry, error)
}

// SettingsStore holds the single settings record.
type SettingsStore interface {
	// GetSettings returns the stored settings, or defaults when none were
	// ever written. Defaults are not persisted.
	GetSettings() (models.AppSettings, error)
	// SaveSettings replaces the stored settings.
	SaveSettings(models.AppSettings) error
}

type Provider interface {
	// Lifecycle
	Open() error
	Close() error

	EntryStore
	SettingsStore

	// Utils
	Engine() string
	GetDataPath() string
}
