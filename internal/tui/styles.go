package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/worthy/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	greetingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true)

	affirmationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Italic(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

var bandColors = map[models.MoodBand]lipgloss.Color{
	models.BandLow:  lipgloss.Color("75"),
	models.BandMid:  lipgloss.Color("186"),
	models.BandHigh: lipgloss.Color("214"),
}

func moodStyle(score int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(bandColors[models.BandForScore(score)]).Bold(true)
}
