// Package backup exports both stores into one portable JSON document,
// imports such documents back, and keeps a rotated directory of export
// files next to the journal.
package backup

import (
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/logger"
	"github.com/julianstephens/worthy/internal/storage"
)

// Option configures a Service or Manager.
type Option func(*config)

type config struct {
	clock func() time.Time
}

func WithClock(clock func() time.Time) Option {
	return func(c *config) { c.clock = clock }
}

func buildConfig(opts []Option) config {
	c := config{clock: time.Now}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ImportError reports an import that stopped after some entries were
// written. The entries applied before the failure stay stored.
type ImportError struct {
	Applied int
	Total   int
	Err     error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import stopped after %d of %d entries: %v", e.Applied, e.Total, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// ImportResult describes what an import changed.
type ImportResult struct {
	Entries          int
	SettingsReplaced bool
}

type Service struct {
	store storage.Provider
	clock func() time.Time
}

func NewService(store storage.Provider, opts ...Option) *Service {
	c := buildConfig(opts)
	return &Service{store: store, clock: c.clock}
}

// Export snapshots both stores. The settings are stamped with the export
// time and written back before the document is returned.
func (s *Service) Export() (Document, error) {
	return s.ExportTo(nil)
}

// ExportTo snapshots both stores and hands the stamped document to write.
// The backup time is saved only after write succeeds, so a failed write
// leaves the journal reporting its previous backup.
func (s *Service) ExportTo(write func(Document) error) (Document, error) {
	entries, err := s.store.ListEntries()
	if err != nil {
		return Document{}, fmt.Errorf("failed to list entries: %w", err)
	}
	settings, err := s.store.GetSettings()
	if err != nil {
		return Document{}, fmt.Errorf("failed to read settings: %w", err)
	}

	now := s.clock()
	settings.LastBackupDate = now.UnixMilli()
	doc := Document{
		Version:    constants.ExportFormatVersion,
		ExportedAt: now.UTC().Format(exportedAtLayout),
		Entries:    entries,
		Settings:   settings,
	}

	if write != nil {
		if err := write(doc); err != nil {
			return Document{}, err
		}
	}
	if err := s.store.SaveSettings(settings); err != nil {
		return Document{}, fmt.Errorf("failed to record backup time: %w", err)
	}
	logger.Info("Journal exported", "entries", len(entries))
	return doc, nil
}

// Import merges a document into the stores. Entries are upserted one at a
// time in document order; settings, when present, replace the stored ones
// after every entry is written.
func (s *Service) Import(raw []byte) (ImportResult, error) {
	p, err := parsePayload(raw, s.clock())
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	total := len(p.entries)
	for _, entry := range p.entries {
		if err := s.store.PutEntry(entry); err != nil {
			logger.Warn("Import stopped", "applied", result.Entries, "total", total, "error", err)
			return result, &ImportError{Applied: result.Entries, Total: total, Err: err}
		}
		result.Entries++
		logger.Debug("Imported entry", "id", entry.ID, "applied", result.Entries, "total", total)
	}

	if p.settings != nil {
		if err := s.store.SaveSettings(*p.settings); err != nil {
			return result, fmt.Errorf("failed to replace settings after %d entries: %w", result.Entries, err)
		}
		result.SettingsReplaced = true
	}

	logger.Info("Journal imported", "entries", result.Entries, "settings", result.SettingsReplaced)
	return result, nil
}

// ImportReader reads a document from r and imports it.
func (s *Service) ImportReader(r io.Reader) (ImportResult, error) {
	raw, err := io.ReadAll(io.LimitReader(r, constants.ImportMaxBodyBytes+1))
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read import: %w", err)
	}
	if len(raw) > constants.ImportMaxBodyBytes {
		return ImportResult{}, invalid("document larger than %d bytes", constants.ImportMaxBodyBytes)
	}
	return s.Import(raw)
}
