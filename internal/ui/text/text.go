// Package text holds the user-facing strings shared by the list and the screen.
package text

import "strconv"

const (
	// Title heads every rendering of the list.
	Title = "Task List"
	// Placeholder is shown in the empty input line.
	Placeholder = "Type a new task..."
	// EmptyTitle is shown when there are no tasks.
	EmptyTitle = "No tasks yet!"
	// EmptyHint follows EmptyTitle.
	EmptyHint = "Why not start by adding a new task?"
	// Prompt asks for text after an empty submission.
	Prompt = "Please type a task"
)

// CountLabel returns "1 task" or "<n> tasks".
func CountLabel(n int) string {
	if n == 1 {
		return "1 task"
	}
	return strconv.Itoa(n) + " tasks"
}
