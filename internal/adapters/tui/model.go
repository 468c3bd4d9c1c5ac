// Package tui provides the interactive task list screen.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/tasklist/internal/core/domain"
)

// chromeHeight is the number of lines around the card list:
// title, input, prompt, banner, blank lines and help.
const chromeHeight = 8

// Store is the part of the task store the screen drives.
type Store interface {
	Add(ctx context.Context, rawText string) (domain.Task, error)
	Toggle(ctx context.Context, id string) bool
	Remove(ctx context.Context, id string) bool
	Snapshot() domain.Snapshot
	Subscribe() (<-chan domain.Update, func())
}

// MsgUpdate carries an update published by the store.
type MsgUpdate struct {
	Update domain.Update
}

// MsgUpdatesClosed is sent once the store closed the subscription.
type MsgUpdatesClosed struct{}

// Model represents the screen state.
type Model struct {
	ctx         context.Context
	store       Store
	updates     <-chan domain.Update
	unsubscribe func()

	Snapshot    domain.Snapshot
	Input       []rune
	Prompting   bool
	Banner      string
	SelectedIdx int
	ListOffset  int
	ListHeight  int
	Width       int
	Quitting    bool
}

// Init starts listening for store updates.
func (m *Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func waitForUpdate(updates <-chan domain.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return MsgUpdatesClosed{}
		}
		return MsgUpdate{Update: u}
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgUpdate:
		m.apply(msg.Update)
		return m, waitForUpdate(m.updates)

	case MsgUpdatesClosed:
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.ListHeight = max(msg.Height-chromeHeight, 1)
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

//nolint:cyclop // one case per key binding
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		if m.Banner != "" {
			m.Banner = ""
			return m, nil
		}
		return m.quit()
	case tea.KeyEnter:
		m.submit()
	case tea.KeyUp:
		if m.SelectedIdx > 0 {
			m.SelectedIdx--
			m.ensureVisible()
		}
	case tea.KeyDown:
		if m.SelectedIdx < m.Snapshot.Len()-1 {
			m.SelectedIdx++
			m.ensureVisible()
		}
	case tea.KeyTab:
		if task, ok := m.selected(); ok {
			m.store.Toggle(m.ctx, task.ID)
			m.refresh()
		}
	case tea.KeyDelete, tea.KeyCtrlD:
		if task, ok := m.selected(); ok {
			m.store.Remove(m.ctx, task.ID)
			m.refresh()
		}
	case tea.KeyBackspace:
		if n := len(m.Input); n > 0 {
			m.Input = m.Input[:n-1]
		}
	case tea.KeySpace:
		m.Input = append(m.Input, ' ')
	case tea.KeyRunes:
		m.Input = append(m.Input, msg.Runes...)
		m.Prompting = false
	}
	return m, nil
}

func (m *Model) submit() {
	_, err := m.store.Add(m.ctx, string(m.Input))
	if domain.IsValidationError(err) {
		m.Prompting = true
		return
	}
	if err != nil {
		m.Banner = headline(err)
		return
	}
	m.Input = nil
	m.Prompting = false
	m.refresh()
	m.SelectedIdx = m.Snapshot.Len() - 1
	m.ensureVisible()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}

// apply takes the snapshot of u unless the model already shows a newer one.
// An error is shown regardless.
func (m *Model) apply(u domain.Update) {
	if u.Snapshot.Revision() >= m.Snapshot.Revision() {
		m.Snapshot = u.Snapshot
		m.clampSelection()
	}
	if u.Err != nil {
		m.Banner = headline(u.Err)
	}
}

// headline is the first line of err's message; joined causes follow on later lines.
func headline(err error) string {
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}

// refresh reads the store directly after a mutation made from this screen.
func (m *Model) refresh() {
	m.Snapshot = m.store.Snapshot()
	m.clampSelection()
}

func (m *Model) clampSelection() {
	if m.SelectedIdx >= m.Snapshot.Len() {
		m.SelectedIdx = m.Snapshot.Len() - 1
	}
	if m.SelectedIdx < 0 {
		m.SelectedIdx = 0
	}
	m.ensureVisible()
}

// ensureVisible scrolls the card window so the selected card is shown.
func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
	if maxOffset := max(m.Snapshot.Len()-m.ListHeight, 0); m.ListOffset > maxOffset {
		m.ListOffset = maxOffset
	}
}

// visibleRange returns the half-open range of cards to render.
func (m *Model) visibleRange() (start, end int) {
	n := m.Snapshot.Len()
	if m.ListHeight <= 0 {
		return 0, n
	}
	start = min(m.ListOffset, n)
	end = min(start+m.ListHeight, n)
	return start, end
}

func (m *Model) selected() (domain.Task, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= m.Snapshot.Len() {
		return domain.Task{}, false
	}
	return m.Snapshot.At(m.SelectedIdx), true
}
