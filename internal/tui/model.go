// Package tui is the interactive entry browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/worthy/internal/affirmation"
	"github.com/julianstephens/worthy/internal/journal"
	"github.com/julianstephens/worthy/internal/models"
)

type SessionState int

const (
	StateList SessionState = iota
	StateDetail
	StateConfirmDelete
)

// chromeHeight is the number of rows used around the active view.
const chromeHeight = 6

// Item adapts an entry to the bubbles list.
type Item struct {
	Entry models.DiaryEntry
}

func (i Item) Title() string {
	event := strings.ReplaceAll(i.Entry.Content.Event, "\n", " ")
	return i.Entry.Date + "  " + event
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s %d", i.Entry.Mood, i.Entry.MoodScore)
	if len(i.Entry.Tags) > 0 {
		desc += " | #" + strings.Join(i.Entry.Tags, " #")
	}
	if i.Entry.HasImage() {
		desc += " | photo"
	}
	if i.Entry.Favorite {
		desc += " | ★"
	}
	return desc
}

func (i Item) FilterValue() string {
	return strings.Join(append([]string{i.Entry.Content.Event, i.Entry.Content.Evidence}, i.Entry.Tags...), " ")
}

type Model struct {
	journal       *journal.Service
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	list          list.Model
	detail        viewport.Model
	current       *models.DiaryEntry // entry open in the detail view or pending deletion
	greeting      string
	backupWarning string
	status        string
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(svc *journal.Service, selector *affirmation.Selector) (Model, error) {
	entries, err := svc.List(journal.Filter{})
	if err != nil {
		return Model{}, err
	}
	settings, err := svc.Settings()
	if err != nil {
		return Model{}, err
	}

	l := list.New(toItems(entries), list.NewDefaultDelegate(), 0, 0)
	l.Title = "Entries"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	greeting := fmt.Sprintf("Hi, %s.", settings.UserName)
	if selector != nil {
		if line := selector.Greeting(); line != "" {
			greeting += " " + line
		}
	}

	m := Model{
		journal:  svc,
		state:    StateList,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		list:     l,
		detail:   viewport.New(0, 0),
		greeting: greeting,
	}

	if status, err := svc.BackupStatus(); err == nil && status.Stale {
		m.backupWarning = fmt.Sprintf("⚠ Last backup was %d days ago. Run `worthy export`.", int(status.Age.Hours()/24))
	}
	return m, nil
}

func toItems(entries []models.DiaryEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case StateDetail:
		return []key.Binding{m.keys.Back, m.keys.Favorite, m.keys.Delete, m.keys.Quit}
	}
	return []key.Binding{m.keys.Enter, m.keys.Filter, m.keys.Favorite, m.keys.Delete, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back, m.keys.Filter}
	actions := []key.Binding{m.keys.Favorite, m.keys.Delete}
	global := []key.Binding{m.keys.Help, m.keys.Quit}
	return [][]key.Binding{navigation, actions, global}
}

// selected returns the entry under the cursor.
func (m Model) selected() (models.DiaryEntry, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.DiaryEntry{}, false
	}
	return item.Entry, true
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	h, v := docStyle.GetFrameSize()
	inner := max(height-chromeHeight-v, 1)
	m.list.SetSize(max(width-h, 1), inner)
	m.detail.Width = max(width-h, 1)
	m.detail.Height = inner
	if m.current != nil {
		m.detail.SetContent(renderEntry(*m.current, m.detail.Width))
	}
}

// reload refreshes the list from the store.
func (m *Model) reload() tea.Cmd {
	entries, err := m.journal.List(journal.Filter{})
	if err != nil {
		m.err = err
		return nil
	}
	return m.list.SetItems(toItems(entries))
}

func (m *Model) openDetail(entry models.DiaryEntry) {
	m.current = &entry
	m.detail.SetContent(renderEntry(entry, m.detail.Width))
	m.detail.GotoTop()
	m.state = StateDetail
}

func (m *Model) askDelete(entry models.DiaryEntry) {
	m.current = &entry
	m.previousState = m.state
	m.state = StateConfirmDelete
}

func (m *Model) toggleFavorite(entry models.DiaryEntry) tea.Cmd {
	entry.Favorite = !entry.Favorite
	if err := m.journal.Update(entry); err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	if entry.Favorite {
		m.status = "Marked as favorite"
	} else {
		m.status = "Removed from favorites"
	}
	if m.current != nil && m.current.ID == entry.ID {
		m.current = &entry
		m.detail.SetContent(renderEntry(entry, m.detail.Width))
	}
	return m.reload()
}

func (m *Model) deleteCurrent() tea.Cmd {
	if m.current == nil {
		m.state = StateList
		return nil
	}
	id := m.current.ID
	m.current = nil
	m.state = StateList

	if err := m.journal.Delete(id); err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.status = "Entry deleted"
	return m.reload()
}
