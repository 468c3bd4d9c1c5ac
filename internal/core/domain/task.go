package domain

import (
	"strings"
	"time"
)

// DefaultTimestampLayout is the layout used to render a task's creation time.
const DefaultTimestampLayout = "2006-01-02 15:04:05"

// Task is one user-entered to-do item.
// The JSON field names match the slot format written by earlier clients.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	Completed bool   `json:"completed"`
}

// NewTask validates rawText and builds an incomplete task.
// It returns ErrEmptyTaskText when rawText is blank after trimming.
func NewTask(id, rawText string, now time.Time, layout string) (Task, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return Task{}, ErrEmptyTaskText
	}
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	return Task{
		ID:        id,
		Text:      text,
		CreatedAt: now.Format(layout),
		Completed: false,
	}, nil
}

// Toggled returns a copy of t with Completed negated.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}
