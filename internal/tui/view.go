package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/worthy/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDetail:
		content = m.detail.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = m.viewList()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewStatus(),
		docStyle.Render(content),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render("worthy"),
		greetingStyle.Render(m.greeting),
	)
}

func (m Model) viewStatus() string {
	switch {
	case m.err != nil:
		return dangerStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		return statusStyle.Render(m.status)
	case m.backupWarning != "":
		return warningStyle.Render(m.backupWarning)
	}
	return ""
}

func (m Model) viewList() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "No entries yet.\nRun `worthy write` to add one."
	}
	return m.list.View()
}

func (m Model) viewConfirmDelete() string {
	lines := []string{dangerStyle.Render("Are you sure you want to delete this entry?"), ""}
	if m.current != nil {
		lines = append(lines, m.current.Date+"  "+m.current.Content.Event, "")
	}
	lines = append(lines, "[y] Yes", "[n] No")
	return lipgloss.Place(m.width, max(m.height-chromeHeight, len(lines)),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

// renderEntry lays out an entry for the detail viewport, wrapped to width.
func renderEntry(entry models.DiaryEntry, width int) string {
	text := lipgloss.NewStyle().Width(max(width, 20))

	var b strings.Builder
	b.WriteString(labelStyle.Render(entry.Title) + "  " + entry.Date + "\n")
	b.WriteString(moodStyle(entry.MoodScore).Render(string(entry.Mood)) + " " + moodScore(entry))
	if entry.Favorite {
		b.WriteString("  ★")
	}
	b.WriteString("\n")
	if len(entry.Tags) > 0 {
		b.WriteString("#" + strings.Join(entry.Tags, " #") + "\n")
	}
	if entry.HasImage() {
		b.WriteString("(photo attached)\n")
	}

	sections := []struct {
		label string
		body  string
	}{
		{"What happened", entry.Content.Event},
		{"How it felt", entry.Content.Feeling},
		{"Why I am worthy", entry.Content.Evidence},
	}
	for _, s := range sections {
		b.WriteString("\n" + labelStyle.Render(s.label) + "\n")
		b.WriteString(text.Render(s.body) + "\n")
	}

	if entry.AIResponse != "" {
		b.WriteString("\n" + affirmationStyle.Render(entry.AIResponse) + "\n")
	}
	return b.String()
}

func moodScore(entry models.DiaryEntry) string {
	return lipgloss.NewStyle().Faint(true).Render("(" + strconv.Itoa(entry.MoodScore) + ")")
}
