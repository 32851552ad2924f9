package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONLegacyFileIsUpgraded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	legacy := `{
  "entries": [
    {"id": "old", "timestamp": 100, "date": "2023-01-01", "content": {"event": "e", "evidence": "v"}, "mood": "sad"},
    {"id": "new", "timestamp": 200, "date": "2023-01-02", "content": {"event": "e", "feeling": "f", "evidence": "v"}, "mood": "happy", "moodScore": 90, "tags": ["自然"]}
  ]
}`
	if err := os.WriteFile(path, []byte(legacy), 0600); err != nil {
		t.Fatal(err)
	}

	store := openStore(t, path)
	entries, err := store.ListEntries()
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "new" || entries[1].ID != "old" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[1].MoodScore != 50 || entries[0].MoodScore != 90 {
		t.Errorf("expected scores 90 and 50, got %d and %d", entries[0].MoodScore, entries[1].MoodScore)
	}
	if entries[1].Tags == nil || entries[1].Content.Feeling != "" {
		t.Errorf("legacy entry was not normalized: %+v", entries[1])
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.UserName != "Friend" {
		t.Errorf("expected default settings, got %+v", settings)
	}
}

func TestJSONPartialSettingsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	if err := os.WriteFile(path, []byte(`{"version":1,"recordVersion":2,"settings":{"userName":"Ann"},"entries":[]}`), 0600); err != nil {
		t.Fatal(err)
	}

	settings, err := openStore(t, path).GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.UserName != "Ann" || settings.ReminderTime != "20:00" || settings.CustomTags == nil {
		t.Errorf("expected missing keys to take defaults, got %+v", settings)
	}
}

func TestJSONCurrentVersionMissingMoodScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	doc := `{"version":1,"recordVersion":2,"entries":[{"id":"a","timestamp":1,"date":"2024-01-01","content":{"event":"e","evidence":"v"}}]}`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	entries, err := openStore(t, path).ListEntries()
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].MoodScore != 50 {
		t.Errorf("expected mood score 50, got %+v", entries)
	}
}

func TestJSONCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Open(); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if _, err := store.ListEntries(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("expected ErrNotOpen after failed open, got %v", err)
	}
}

func TestJSONWriteFailureLeavesStateUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	store := NewJSONStore(path, WithClock(testClock))
	if err := store.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.PutEntry(makeEntry("a", 1000)); err != nil {
		t.Fatalf("PutEntry failed: %v", err)
	}

	// A directory in place of the temp file makes every persist fail.
	if err := os.Mkdir(path+".tmp", 0700); err != nil {
		t.Fatal(err)
	}

	if err := store.PutEntry(makeEntry("b", 2000)); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("expected ErrWriteFailed, got %v", err)
	}
	changed := makeEntry("a", 1000)
	changed.Content.Event = "changed"
	if err := store.PutEntry(changed); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("expected ErrWriteFailed, got %v", err)
	}
	if err := store.DeleteEntry("a"); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("expected ErrWriteFailed, got %v", err)
	}

	entries, _ := store.ListEntries()
	if len(entries) != 1 || entries[0].ID != "a" || entries[0].Content.Event != "event a" {
		t.Errorf("failed writes leaked into the store: %+v", entries)
	}
}

func TestJSONFileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	store := openStore(t, path)
	store.PutEntry(makeEntry("a", 1000))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("Failed to parse file: %v", err)
	}
	if state.Version != jsonFileVersion || state.RecordVersion != 2 || len(state.Entries) != 1 {
		t.Errorf("unexpected file layout: %s", data)
	}
	if string(state.Settings) != "null" {
		t.Errorf("settings should stay null until saved, got %s", state.Settings)
	}
}
