package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/worthy/internal/tui"
)

type BrowseCmd struct{}

func (c *BrowseCmd) Run(ctx *Context) error {
	m, err := tui.NewModel(ctx.Journal, ctx.Selector)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
