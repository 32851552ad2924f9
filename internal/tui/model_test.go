package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/worthy/internal/affirmation"
	"github.com/julianstephens/worthy/internal/journal"
	"github.com/julianstephens/worthy/internal/models"
	"github.com/julianstephens/worthy/internal/storage"
)

var testNow = time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

func setupTestJournal(t *testing.T, events ...string) *journal.Service {
	t.Helper()
	now := testNow
	clock := func() time.Time { return now }

	store, err := storage.New("", filepath.Join(t.TempDir(), "journal.db"), storage.WithClock(clock))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Open(); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	n := 0
	svc := journal.NewService(store, affirmation.NewSelector(affirmation.WithSeed(7)),
		journal.WithClock(clock),
		journal.WithIDGenerator(func() string { n++; return fmt.Sprintf("entry-%04d", n) }),
		journal.WithLocation(time.UTC),
	)
	for _, event := range events {
		_, err := svc.Create(models.EntryDraft{
			Content:   models.EntryContent{Event: event, Evidence: "evidence for " + event},
			MoodScore: 70,
		})
		if err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}
		now = now.Add(time.Hour)
	}
	return svc
}

func newTestModel(t *testing.T, svc *journal.Service) Model {
	t.Helper()
	m, err := NewModel(svc, affirmation.NewSelector(affirmation.WithSeed(1)))
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func storedIDs(t *testing.T, svc *journal.Service) []string {
	t.Helper()
	entries, err := svc.List(journal.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func TestNewModelListsNewestFirst(t *testing.T) {
	svc := setupTestJournal(t, "first walk", "second walk")
	m := newTestModel(t, svc)

	if len(m.list.Items()) != 2 {
		t.Fatalf("expected 2 items, got %d", len(m.list.Items()))
	}
	entry, ok := m.selected()
	if !ok || entry.ID != "entry-0002" {
		t.Errorf("expected newest entry selected, got %+v", entry)
	}
	if !strings.Contains(m.View(), "second walk") {
		t.Error("list view should show the entry event")
	}
}

func TestEmptyJournalView(t *testing.T) {
	m := newTestModel(t, setupTestJournal(t))

	view := m.View()
	if !strings.Contains(view, "No entries yet") {
		t.Errorf("expected empty message, got:\n%s", view)
	}
	if !strings.Contains(view, "Hi, Friend.") {
		t.Errorf("expected greeting with the default name, got:\n%s", view)
	}
}

func TestEnterOpensDetail(t *testing.T) {
	m := newTestModel(t, setupTestJournal(t, "met an old friend"))

	m = press(t, m, "enter")
	if m.state != StateDetail {
		t.Fatalf("expected detail state, got %v", m.state)
	}
	if m.current == nil || m.current.ID != "entry-0001" {
		t.Fatalf("expected current entry, got %+v", m.current)
	}
	view := m.View()
	if !strings.Contains(view, "evidence for met an old friend") {
		t.Errorf("detail should show the evidence, got:\n%s", view)
	}

	m = press(t, m, "esc")
	if m.state != StateList || m.current != nil {
		t.Errorf("esc should return to the list, state %v", m.state)
	}
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	svc := setupTestJournal(t, "one", "two")
	m := newTestModel(t, svc)

	m = press(t, m, "d")
	if m.state != StateConfirmDelete {
		t.Fatalf("expected confirmation state, got %v", m.state)
	}
	if !strings.Contains(m.View(), "Are you sure") {
		t.Error("confirmation prompt not shown")
	}

	m = press(t, m, "n")
	if m.state != StateList {
		t.Errorf("n should cancel, state %v", m.state)
	}
	if len(storedIDs(t, svc)) != 2 {
		t.Fatal("cancelled delete removed an entry")
	}

	m = press(t, m, "d")
	m = press(t, m, "y")
	if m.state != StateList {
		t.Errorf("expected list after delete, got %v", m.state)
	}
	ids := storedIDs(t, svc)
	if len(ids) != 1 || ids[0] != "entry-0001" {
		t.Errorf("expected only entry-0001 left, got %v", ids)
	}
	if len(m.list.Items()) != 1 {
		t.Errorf("list not refreshed, %d items", len(m.list.Items()))
	}
	if m.status != "Entry deleted" {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestCancelDeleteFromDetailReturnsToDetail(t *testing.T) {
	svc := setupTestJournal(t, "one")
	m := newTestModel(t, svc)

	m = press(t, m, "enter")
	m = press(t, m, "d")
	if m.state != StateConfirmDelete {
		t.Fatalf("expected confirmation state, got %v", m.state)
	}
	m = press(t, m, "esc")
	if m.state != StateDetail || m.current == nil {
		t.Errorf("cancel should return to the open entry, state %v", m.state)
	}

	m = press(t, m, "d")
	m = press(t, m, "y")
	if len(storedIDs(t, svc)) != 0 {
		t.Error("entry not deleted from the detail view")
	}
	if m.state != StateList || m.current != nil {
		t.Errorf("expected list after delete, state %v", m.state)
	}
}

func TestFavoriteToggle(t *testing.T) {
	svc := setupTestJournal(t, "one")
	m := newTestModel(t, svc)

	m = press(t, m, "f")
	entry, err := svc.Get("entry-0001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !entry.Favorite {
		t.Fatal("entry should be a favorite")
	}
	if entry.Timestamp != testNow.UnixMilli() {
		t.Errorf("favorite changed the timestamp: %d", entry.Timestamp)
	}

	m = press(t, m, "enter")
	m = press(t, m, "f")
	entry, _ = svc.Get("entry-0001")
	if entry.Favorite || m.current.Favorite {
		t.Error("second toggle should clear the favorite")
	}
}

func TestQuitIgnoredWhileFiltering(t *testing.T) {
	m := newTestModel(t, setupTestJournal(t, "one"))

	m = press(t, m, "/")
	m = press(t, m, "q")
	if m.quitting {
		t.Fatal("q typed into the filter should not quit")
	}

	m = press(t, m, "esc")
	m = press(t, m, "q")
	if !m.quitting {
		t.Error("q should quit from the list")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestStaleBackupWarning(t *testing.T) {
	svc := setupTestJournal(t)
	_, err := svc.UpdateSettings(func(s *models.AppSettings) {
		s.LastBackupDate = testNow.Add(-4 * 24 * time.Hour).UnixMilli()
	})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	m := newTestModel(t, svc)
	if !strings.Contains(m.View(), "Last backup was 4 days ago") {
		t.Errorf("expected backup warning, got:\n%s", m.View())
	}
}
