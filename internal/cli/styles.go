package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/worthy/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("37"))

	summaryStyle = lipgloss.NewStyle().
			MaxWidth(48)

	affirmationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

var bandColors = map[models.MoodBand]lipgloss.Color{
	models.BandLow:  lipgloss.Color("75"),
	models.BandMid:  lipgloss.Color("186"),
	models.BandHigh: lipgloss.Color("214"),
}

func moodStyle(score int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(bandColors[models.BandForScore(score)])
}
