package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen runs a Model as a bubbletea program.
type Screen struct {
	program *tea.Program
	errCh   chan error
}

// NewScreen creates a screen for model.
func NewScreen(model *Model, opts ...tea.ProgramOption) *Screen {
	return &Screen{
		program: tea.NewProgram(model, opts...),
		errCh:   make(chan error, 1),
	}
}

// Start launches the program in a background goroutine.
func (s *Screen) Start() {
	go func() {
		_, err := s.program.Run()
		s.errCh <- err
	}()
}

// Stop asks the program to quit.
func (s *Screen) Stop() {
	s.program.Quit()
}

// Wait blocks until the program has terminated.
func (s *Screen) Wait() error {
	return <-s.errCh
}
