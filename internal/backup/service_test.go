package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/models"
	"github.com/julianstephens/worthy/internal/storage"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)}
}

var engineFiles = map[string]string{"sqlite": "journal.db", "json": "journal.json"}

func openTestStore(t *testing.T, path string, clock *testClock) storage.Provider {
	t.Helper()
	store, err := storage.New("", path, storage.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Open(); err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func forEachEngine(t *testing.T, fn func(t *testing.T, store storage.Provider, clock *testClock)) {
	t.Helper()
	for engine, file := range engineFiles {
		t.Run(engine, func(t *testing.T) {
			clock := newTestClock()
			fn(t, openTestStore(t, filepath.Join(t.TempDir(), file), clock), clock)
		})
	}
}

func sampleEntry(id string, ts int64) models.DiaryEntry {
	return models.DiaryEntry{
		ID:         id,
		Timestamp:  ts,
		Date:       "2024-06-30",
		Title:      constants.JournalTitle,
		Content:    models.EntryContent{Event: "event", Feeling: "温暖", Evidence: "evidence"},
		Tags:       []string{"家人"},
		Mood:       models.MoodHappy,
		MoodScore:  75,
		AIResponse: "你值得被爱。",
	}
}

func snapshot(t *testing.T, store storage.Provider) ([]models.DiaryEntry, models.AppSettings) {
	t.Helper()
	entries, err := store.ListEntries()
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	return entries, settings
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestExportImportRoundTrip(t *testing.T) {
	forEachEngine(t, func(t *testing.T, store storage.Provider, clock *testClock) {
		svc := NewService(store, WithClock(clock.Now))
		store.PutEntry(sampleEntry("a", 1000))
		store.PutEntry(sampleEntry("b", 2000))
		store.SaveSettings(models.AppSettings{UserName: "Ann", ReminderTime: "07:30", CustomTags: []string{"跑步"}, LastBackupDate: 1})

		clock.Advance(time.Hour)
		exportedAt := clock.Now()
		doc, err := svc.Export()
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		var buf bytes.Buffer
		if err := doc.Encode(&buf); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		beforeEntries, beforeSettings := snapshot(t, store)

		store.DeleteEntry("a")
		store.SaveSettings(models.DefaultSettings(clock.Now()))

		result, err := svc.Import(buf.Bytes())
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if result.Entries != 2 || !result.SettingsReplaced {
			t.Errorf("unexpected result: %+v", result)
		}

		afterEntries, afterSettings := snapshot(t, store)
		if mustJSON(t, afterEntries) != mustJSON(t, beforeEntries) {
			t.Errorf("entries changed across round trip:\n%s\n%s", mustJSON(t, beforeEntries), mustJSON(t, afterEntries))
		}
		if mustJSON(t, afterSettings) != mustJSON(t, beforeSettings) {
			t.Errorf("settings changed across round trip:\n%s\n%s", mustJSON(t, beforeSettings), mustJSON(t, afterSettings))
		}
		if afterSettings.LastBackupDate < exportedAt.UnixMilli() {
			t.Errorf("lastBackupDate %d is before the export instant %d", afterSettings.LastBackupDate, exportedAt.UnixMilli())
		}
	})
}

func TestExportShape(t *testing.T) {
	forEachEngine(t, func(t *testing.T, store storage.Provider, clock *testClock) {
		svc := NewService(store, WithClock(clock.Now))
		doc, err := svc.Export()
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		var buf bytes.Buffer
		doc.Encode(&buf)

		var decoded map[string]json.RawMessage
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("export is not JSON: %v", err)
		}
		if string(decoded["version"]) != "1" || string(decoded["entries"]) != "[]" {
			t.Errorf("unexpected export: %s", buf.String())
		}
		if string(decoded["exportedAt"]) != `"2024-07-01T08:00:00.000Z"` {
			t.Errorf("unexpected exportedAt: %s", decoded["exportedAt"])
		}
		if !strings.Contains(buf.String(), "\n  \"version\": 1") {
			t.Errorf("export should be indented by two spaces:\n%s", buf.String())
		}

		// Re-importing the empty export changes nothing.
		before, beforeSettings := snapshot(t, store)
		if _, err := svc.Import(buf.Bytes()); err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		after, afterSettings := snapshot(t, store)
		if len(before) != 0 || len(after) != 0 || mustJSON(t, beforeSettings) != mustJSON(t, afterSettings) {
			t.Errorf("re-import of empty export changed the store")
		}
	})
}

func TestExportOnEmptyStoreAdvancesBackupDate(t *testing.T) {
	forEachEngine(t, func(t *testing.T, store storage.Provider, clock *testClock) {
		svc := NewService(store, WithClock(clock.Now))
		store.SaveSettings(models.AppSettings{UserName: "Ann", LastBackupDate: 5})

		clock.Advance(24 * time.Hour)
		doc, err := svc.Export()
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if doc.Settings.LastBackupDate != clock.Now().UnixMilli() {
			t.Errorf("document not stamped: %d", doc.Settings.LastBackupDate)
		}
		settings, _ := store.GetSettings()
		if settings.LastBackupDate != clock.Now().UnixMilli() {
			t.Errorf("stored settings not stamped: %d", settings.LastBackupDate)
		}
		if settings.UserName != "Ann" {
			t.Errorf("export must not reset other settings: %+v", settings)
		}
	})
}

func TestExportToWriteFailure(t *testing.T) {
	forEachEngine(t, func(t *testing.T, store storage.Provider, clock *testClock) {
		svc := NewService(store, WithClock(clock.Now))
		store.SaveSettings(models.AppSettings{UserName: "Ann", LastBackupDate: 5})

		clock.Advance(24 * time.Hour)
		diskFull := errors.New("disk full")
		_, err := svc.ExportTo(func(doc Document) error {
			if doc.Settings.LastBackupDate != clock.Now().UnixMilli() {
				t.Errorf("document handed to write is not stamped: %d", doc.Settings.LastBackupDate)
			}
			return diskFull
		})
		if !errors.Is(err, diskFull) {
			t.Fatalf("expected the write error, got %v", err)
		}
		if settings, _ := store.GetSettings(); settings.LastBackupDate != 5 {
			t.Errorf("failed write must keep the previous backup time, got %d", settings.LastBackupDate)
		}
	})
}

func TestImportEntriesOnly(t *testing.T) {
	forEachEngine(t, func(t *testing.T, store storage.Provider, clock *testClock) {
		svc := NewService(store, WithClock(clock.Now))
		custom := models.AppSettings{UserName: "Ann", ReminderTime: "09:00", LastBackupDate: 42}
		store.SaveSettings(custom)
		store.PutEntry(sampleEntry("existing", 500))

		changed := sampleEntry("existing", 500)
		changed.Content.Event = "overwritten"
		doc := `{"entries":[` + mustJSON(t, sampleEntry("new", 900)) + `,` + mustJSON(t, changed) + `],"settings":null}`

		result, err := svc.Import([]byte(doc))
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if result.Entries != 2 || result.SettingsReplaced {
			t.Errorf("unexpected result: %+v", result)
		}

		entries, settings := snapshot(t, store)
		if len(entries) != 2 || entries[0].ID != "new" || entries[1].Content.Event != "overwritten" {
			t.Errorf("unexpected entries: %+v", entries)
		}
		if settings.UserName != "Ann" || settings.LastBackupDate != 42 {
			t.Errorf("settings should be untouched, got %+v", settings)
		}
	})
}

func TestImportDefaultsMissingFields(t *testing.T) {
	forEachEngine(t, func(t *testing.T, store storage.Provider, clock *testClock) {
		svc := NewService(store, WithClock(clock.Now))
		doc := `{
			"entries": [{"id": "legacy", "timestamp": 100, "date": "2023-01-01", "content": {"event": "e", "feeling": "", "evidence": "v"}, "mood": "calm"}],
			"settings": {"userName": "Bo"}
		}`

		if _, err := svc.Import([]byte(doc)); err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		entries, settings := snapshot(t, store)
		if len(entries) != 1 || entries[0].MoodScore != 50 || entries[0].Tags == nil {
			t.Errorf("legacy entry not upgraded: %+v", entries)
		}
		if settings.UserName != "Bo" || settings.ReminderTime != "20:00" || settings.CustomTags == nil {
			t.Errorf("missing settings fields not defaulted: %+v", settings)
		}
	})
}

func TestImportRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "{broken"},
		{"array top level", `[{"id":"x"}]`},
		{"null", "null"},
		{"string", `"hello"`},
		{"entry not object", `{"entries":[` + `{"id":"ok","timestamp":1}` + `,42]}`},
		{"entry without id", `{"entries":[{"timestamp":1}]}`},
		{"entry with wrong types", `{"entries":[{"id":"x","timestamp":"soon"}]}`},
		{"settings wrong types", `{"settings":{"darkMode":"yes"}}`},
	}

	forEachEngine(t, func(t *testing.T, store storage.Provider, clock *testClock) {
		svc := NewService(store, WithClock(clock.Now))
		store.PutEntry(sampleEntry("keep", 1))
		store.SaveSettings(models.AppSettings{UserName: "Ann", LastBackupDate: 7})
		beforeEntries, beforeSettings := snapshot(t, store)

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Import([]byte(tt.doc))
				if !errors.Is(err, ErrImportFormatInvalid) {
					t.Fatalf("expected ErrImportFormatInvalid, got %v", err)
				}
				entries, settings := snapshot(t, store)
				if mustJSON(t, entries) != mustJSON(t, beforeEntries) || mustJSON(t, settings) != mustJSON(t, beforeSettings) {
					t.Error("a rejected import changed the store")
				}
			})
		}
	})
}

func TestImportIgnoresUnrecognizedParts(t *testing.T) {
	forEachEngine(t, func(t *testing.T, store storage.Provider, clock *testClock) {
		svc := NewService(store, WithClock(clock.Now))

		for _, doc := range []string{
			`{}`,
			`{"entries":"nope"}`,
			`{"entries":{"id":"x"}}`,
			`{"version":1,"exportedAt":"x"}`,
			`{"settings":false}`,
			`{"settings":0}`,
			`{"settings":""}`,
			`{"settings":"dark"}`,
			`{"settings":[]}`,
		} {
			result, err := svc.Import([]byte(doc))
			if err != nil {
				t.Fatalf("Import(%s) failed: %v", doc, err)
			}
			if result.Entries != 0 || result.SettingsReplaced {
				t.Errorf("Import(%s) should be a no-op, got %+v", doc, result)
			}
		}
		if entries, _ := store.ListEntries(); len(entries) != 0 {
			t.Errorf("no entries should have been written, got %d", len(entries))
		}
	})
}

// failingStore fails PutEntry after a number of successful writes.
type failingStore struct {
	storage.Provider
	allow int
}

func (f *failingStore) PutEntry(entry models.DiaryEntry) error {
	if f.allow == 0 {
		return storage.ErrWriteFailed
	}
	f.allow--
	return f.Provider.PutEntry(entry)
}

func TestImportPartialFailure(t *testing.T) {
	clock := newTestClock()
	inner := openTestStore(t, filepath.Join(t.TempDir(), "journal.json"), clock)
	svc := NewService(&failingStore{Provider: inner, allow: 2}, WithClock(clock.Now))

	doc := `{"entries":[` +
		mustJSON(t, sampleEntry("a", 1)) + `,` +
		mustJSON(t, sampleEntry("b", 2)) + `,` +
		mustJSON(t, sampleEntry("c", 3)) + `],"settings":{"userName":"Zed"}}`

	result, err := svc.Import([]byte(doc))
	var importErr *ImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("expected *ImportError, got %v", err)
	}
	if importErr.Applied != 2 || importErr.Total != 3 || !errors.Is(err, storage.ErrWriteFailed) {
		t.Errorf("unexpected import error: %+v", importErr)
	}
	if result.Entries != 2 || result.SettingsReplaced {
		t.Errorf("unexpected result: %+v", result)
	}

	entries, settings := snapshot(t, inner)
	if len(entries) != 2 {
		t.Errorf("entries applied before the failure should stay, got %d", len(entries))
	}
	if settings.UserName == "Zed" {
		t.Error("settings must not be replaced after a failed entry")
	}
}

func TestImportReader(t *testing.T) {
	clock := newTestClock()
	store := openTestStore(t, filepath.Join(t.TempDir(), "journal.db"), clock)
	svc := NewService(store, WithClock(clock.Now))

	result, err := svc.ImportReader(strings.NewReader(`{"entries":[` + mustJSON(t, sampleEntry("a", 1)) + `]}`))
	if err != nil || result.Entries != 1 {
		t.Fatalf("ImportReader failed: %v %+v", err, result)
	}
}

func TestDecodeDocument(t *testing.T) {
	clock := newTestClock()
	store := openTestStore(t, filepath.Join(t.TempDir(), "journal.db"), clock)
	store.PutEntry(sampleEntry("a", 1))
	doc, _ := NewService(store, WithClock(clock.Now)).Export()

	var buf bytes.Buffer
	doc.Encode(&buf)
	decoded, err := DecodeDocument(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeDocument failed: %v", err)
	}
	if decoded.Version != 1 || len(decoded.Entries) != 1 || decoded.ExportedAt != doc.ExportedAt {
		t.Errorf("unexpected document: %+v", decoded)
	}
	if ts, err := decoded.ExportTime(); err != nil || !ts.Equal(clock.Now()) {
		t.Errorf("ExportTime = %v, %v", ts, err)
	}
}
