package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/tasklist/internal/core/domain"
	"go.trai.ch/tasklist/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	countStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	inputStyle = lipgloss.NewStyle().
			Foreground(style.Ink).
			Background(style.Mist).
			Padding(0, 1)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(style.Slate).
				Background(style.Mist).
				Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(style.Yellow).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Red).
			Foreground(style.White)

	cursorStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Foreground(style.Ink).
			Padding(0, 1)

	emptyTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(style.Slate)

	helpStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)
)

// cardFor returns the card style for the row at index.
func cardFor(index int, completed bool) lipgloss.Style {
	s := cardStyle.Background(style.Pastels[domain.ColorIndex(index, len(style.Pastels))])
	if completed {
		s = s.Strikethrough(true).Faint(true)
	}
	return s
}
