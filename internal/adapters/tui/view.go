package tui

import (
	"strings"

	"go.trai.ch/tasklist/internal/core/domain"
	"go.trai.ch/tasklist/internal/ui/style"
	"go.trai.ch/tasklist/internal/ui/text"
)

const cursorWidth = 2

const helpText = "enter add · ↑/↓ select · tab toggle · del remove · esc quit"

// View renders the screen.
func (m *Model) View() string {
	if m.Quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(text.Title))
	s.WriteString(" ")
	s.WriteString(countStyle.Render(text.CountLabel(m.Snapshot.Len())))
	s.WriteString("\n\n")

	s.WriteString(m.inputLine())
	s.WriteString("\n")
	if m.Prompting {
		s.WriteString(promptStyle.Render(style.Warning+" "+text.Prompt) + "\n")
	}
	if m.Banner != "" {
		s.WriteString(bannerStyle.Render(style.Cross+" "+m.Banner) + " " + helpStyle.Render("esc to dismiss") + "\n")
	}
	s.WriteString("\n")

	if m.Snapshot.Len() == 0 {
		s.WriteString(emptyTitleStyle.Render(text.EmptyTitle) + "\n")
		s.WriteString(countStyle.Render(text.EmptyHint) + "\n")
	} else {
		start, end := m.visibleRange()
		for i := start; i < end; i++ {
			s.WriteString(m.renderCard(i, m.Snapshot.At(i)) + "\n")
		}
	}

	s.WriteString("\n" + helpStyle.Render(helpText) + "\n")
	return s.String()
}

func (m *Model) inputLine() string {
	if len(m.Input) == 0 {
		return cursorStyle.Render(style.Plus) + " " + placeholderStyle.Render(text.Placeholder)
	}
	return cursorStyle.Render(style.Plus) + " " + inputStyle.Render(string(m.Input)+"_")
}

func (m *Model) renderCard(index int, task domain.Task) string {
	cursor := "  "
	if index == m.SelectedIdx {
		cursor = cursorStyle.Render("> ")
	}

	mark := style.Circle
	if task.Completed {
		mark = style.Check
	}

	card := cardFor(index, task.Completed)
	if m.Width > cursorWidth {
		card = card.Width(m.Width - cursorWidth)
	}

	return cursor + card.Render(mark+" "+task.Text+"  · "+task.CreatedAt)
}
