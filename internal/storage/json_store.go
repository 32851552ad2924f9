package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/logger"
	"github.com/julianstephens/worthy/internal/models"
	"github.com/julianstephens/worthy/internal/records"
)

// jsonFileVersion is the layout version of the JSON store file itself.
const jsonFileVersion = 1

type fileState struct {
	Version       int               `json:"version"`
	RecordVersion int               `json:"recordVersion"`
	Settings      json.RawMessage   `json:"settings"`
	Entries       []json.RawMessage `json:"entries"`
}

// JSONStore keeps the whole journal in one JSON file, rewritten on every
// write through a temporary file and a rename.
type JSONStore struct {
	path  string
	clock func() time.Time

	mu       sync.RWMutex
	open     bool
	entries  map[string]models.DiaryEntry
	order    []string // ids, newest first
	settings *models.AppSettings
}

func NewJSONStore(path string, opts ...Option) *JSONStore {
	o := buildOptions(opts)
	return &JSONStore{
		path:  path,
		clock: o.clock,
	}
}

// Open loads the file, creating its directory when needed. A missing file
// is an empty journal; it is written on the first mutation.
func (s *JSONStore) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %w", ErrStorageUnavailable, err)
	}

	s.entries = make(map[string]models.DiaryEntry)
	s.order = make([]string, 0)
	s.settings = nil

	if err := s.load(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.open = true
	logger.Debug("Opened entry store", "engine", constants.EngineJSON, "path", s.path, "entries", len(s.order))
	return nil
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if state.Version > jsonFileVersion {
		return fmt.Errorf("storage file version %d is newer than supported version %d", state.Version, jsonFileVersion)
	}

	for i, raw := range state.Entries {
		entry, err := records.UpgradeEntry(raw, state.RecordVersion)
		if err != nil {
			return fmt.Errorf("failed to read entry %d: %w", i, err)
		}
		s.putLocked(entry)
	}

	if len(state.Settings) > 0 && !bytes.Equal(bytes.TrimSpace(state.Settings), []byte("null")) {
		settings := models.DefaultSettings(s.clock())
		if err := json.Unmarshal(state.Settings, &settings); err != nil {
			return fmt.Errorf("failed to parse settings: %w", err)
		}
		settings.Normalize()
		s.settings = &settings
	}

	return nil
}

func (s *JSONStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.entries = nil
	s.order = nil
	s.settings = nil
	return nil
}

func (s *JSONStore) Engine() string {
	return constants.EngineJSON
}

func (s *JSONStore) GetDataPath() string {
	return s.path
}

// compareOrder sorts newest first, ties broken by id descending.
func compareOrder(a, b models.DiaryEntry) int {
	switch {
	case a.Timestamp > b.Timestamp:
		return -1
	case a.Timestamp < b.Timestamp:
		return 1
	}
	return -strings.Compare(a.ID, b.ID)
}

// putLocked places entry in the map and at its position in order.
func (s *JSONStore) putLocked(entry models.DiaryEntry) {
	if _, exists := s.entries[entry.ID]; exists {
		s.removeLocked(entry.ID)
	}
	s.entries[entry.ID] = entry
	pos, _ := slices.BinarySearchFunc(s.order, entry, func(id string, target models.DiaryEntry) int {
		return compareOrder(s.entries[id], target)
	})
	s.order = slices.Insert(s.order, pos, entry.ID)
}

func (s *JSONStore) removeLocked(id string) {
	delete(s.entries, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *JSONStore) PutEntry(entry models.DiaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrNotOpen
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	prev, existed := s.entries[entry.ID]
	s.putLocked(entry)
	if err := s.persistLocked(); err != nil {
		// Roll the in-memory state back so reads match the file.
		s.removeLocked(entry.ID)
		if existed {
			s.putLocked(prev)
		}
		return fmt.Errorf("%w: failed to save entry %s: %w", ErrWriteFailed, entry.ID, err)
	}
	return nil
}

func (s *JSONStore) DeleteEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrNotOpen
	}
	prev, existed := s.entries[id]
	if !existed {
		return nil
	}

	s.removeLocked(id)
	if err := s.persistLocked(); err != nil {
		s.putLocked(prev)
		return fmt.Errorf("%w: failed to delete entry %s: %w", ErrWriteFailed, id, err)
	}
	return nil
}

func (s *JSONStore) ListEntries() ([]models.DiaryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, ErrNotOpen
	}

	entries := make([]models.DiaryEntry, 0, len(s.order))
	for _, id := range s.order {
		entry := s.entries[id]
		entry.Tags = slices.Clone(entry.Tags)
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *JSONStore) GetSettings() (models.AppSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return models.AppSettings{}, ErrNotOpen
	}
	if s.settings == nil {
		return models.DefaultSettings(s.clock()), nil
	}

	settings := *s.settings
	settings.CustomTags = slices.Clone(settings.CustomTags)
	settings.CustomMoods = slices.Clone(settings.CustomMoods)
	return settings, nil
}

func (s *JSONStore) SaveSettings(settings models.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrNotOpen
	}

	settings.Normalize()
	settings.CustomTags = slices.Clone(settings.CustomTags)
	settings.CustomMoods = slices.Clone(settings.CustomMoods)

	prev := s.settings
	s.settings = &settings
	if err := s.persistLocked(); err != nil {
		s.settings = prev
		return fmt.Errorf("%w: failed to save settings: %w", ErrWriteFailed, err)
	}
	return nil
}

func (s *JSONStore) persistLocked() error {
	state := fileState{
		Version:       jsonFileVersion,
		RecordVersion: records.CurrentVersion,
		Settings:      json.RawMessage("null"),
		Entries:       make([]json.RawMessage, 0, len(s.order)),
	}
	for _, id := range s.order {
		raw, err := records.Encode(s.entries[id])
		if err != nil {
			return fmt.Errorf("failed to encode entry %s: %w", id, err)
		}
		state.Entries = append(state.Entries, raw)
	}
	if s.settings != nil {
		raw, err := json.Marshal(s.settings)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		state.Settings = raw
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}
