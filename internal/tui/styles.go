package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/motivation"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(20)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

var statusColors = map[models.DayStatus]lipgloss.Color{
	models.StatusCompleted:    lipgloss.Color("#22C55E"),
	models.StatusMissed:       lipgloss.Color("#EF4444"),
	models.StatusBeforeSignup: lipgloss.Color("240"),
	models.StatusFuture:       lipgloss.Color("238"),
}

var levelColors = map[motivation.Tier]lipgloss.Color{
	motivation.LevelExcellent: lipgloss.Color("#22C55E"),
	motivation.LevelGood:      lipgloss.Color("#3B82F6"),
	motivation.LevelFair:      lipgloss.Color("#F59E0B"),
	motivation.LevelLow:       lipgloss.Color("#EF4444"),
}

// StatusStyle colours a day cell by its status.
func StatusStyle(status models.DayStatus) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(statusColors[status])
}

// LevelStyle colours a weekly rate by its motivation tier.
func LevelStyle(rate int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(levelColors[motivation.Level(rate)]).Bold(true)
}
