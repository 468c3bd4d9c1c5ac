package tui

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/tasklist/internal/ui/output"
)

// NewModel subscribes to store and returns a model showing its current snapshot.
// Colours are written for w; a nil w means stderr.
func NewModel(ctx context.Context, store Store, w io.Writer) *Model {
	if w == nil {
		w = os.Stderr
	}
	lipgloss.SetColorProfile(output.New(w).Profile)

	updates, unsubscribe := store.Subscribe()
	return &Model{
		ctx:         ctx,
		store:       store,
		updates:     updates,
		unsubscribe: unsubscribe,
		Snapshot:    store.Snapshot(),
	}
}
