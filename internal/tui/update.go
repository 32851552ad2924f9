package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateConfirmDelete:
			return m.updateConfirmDelete(msg)
		case StateDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}

	// Filter results and other component messages.
	if m.state == StateDetail {
		m.detail, cmd = m.detail.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.list.FilterState() == list.Filtering {
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if entry, ok := m.selected(); ok {
			m.status = ""
			m.openDetail(entry)
		}
		return m, nil
	case key.Matches(msg, m.keys.Favorite):
		if entry, ok := m.selected(); ok {
			return m, m.toggleFavorite(entry)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if entry, ok := m.selected(); ok {
			m.askDelete(entry)
		}
		return m, nil
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.current = nil
		m.state = StateList
		return m, nil
	case key.Matches(msg, m.keys.Favorite):
		if m.current != nil {
			return m, m.toggleFavorite(*m.current)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if m.current != nil {
			m.askDelete(*m.current)
		}
		return m, nil
	}

	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m, m.deleteCurrent()
	case key.Matches(msg, m.keys.Cancel):
		m.state = m.previousState
		if m.state != StateDetail {
			m.current = nil
		}
	}
	return m, nil
}
