// Package linear writes task snapshots as plain, line-oriented text.
package linear

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/tasklist/internal/core/domain"
	"go.trai.ch/tasklist/internal/ui/output"
	"go.trai.ch/tasklist/internal/ui/style"
	"go.trai.ch/tasklist/internal/ui/text"
)

// Renderer prints a snapshot as a header line followed by one row per task:
//
//	Task List · 2 tasks
//	  [ ] <id>  Buy milk  · 2024-01-01 10:00:00
//
// Colour is used only when the output is a terminal and NO_COLOR is unset.
type Renderer struct {
	out *termenv.Output
}

// NewRenderer creates a Renderer writing to w. A nil w writes to stdout.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	return &Renderer{out: output.ForWriter(w)}
}

// NewRendererWithOutput creates a Renderer over a prepared termenv output.
func NewRendererWithOutput(out *termenv.Output) *Renderer {
	return &Renderer{out: out}
}

// Render writes snap.
func (r *Renderer) Render(snap domain.Snapshot) error {
	title := r.out.String(text.Title).Foreground(termenv.RGBColor(string(style.Iris))).Bold()
	count := r.out.String(text.CountLabel(snap.Len())).Foreground(termenv.RGBColor(string(style.Slate)))
	if _, err := fmt.Fprintf(r.out, "%s · %s\n", title, count); err != nil {
		return err
	}

	if snap.Len() == 0 {
		_, err := fmt.Fprintf(r.out, "  %s %s\n",
			text.EmptyTitle,
			r.out.String(text.EmptyHint).Foreground(termenv.RGBColor(string(style.Slate))),
		)
		return err
	}

	for _, task := range snap.All() {
		if err := r.renderTask(task); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderTask(task domain.Task) error {
	box := r.out.String(style.Checkbox(task.Completed))
	body := r.out.String(task.Text)
	if task.Completed {
		box = box.Foreground(termenv.RGBColor(string(style.Green)))
		body = body.CrossOut().Faint()
	}
	id := r.out.String(task.ID).Foreground(termenv.RGBColor(string(style.Slate)))
	created := r.out.String("· " + task.CreatedAt).Foreground(termenv.RGBColor(string(style.Slate)))

	_, err := fmt.Fprintf(r.out, "  %s %s  %s  %s\n", box, id, body, created)
	return err
}
