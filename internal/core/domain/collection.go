package domain

import "slices"

// The collection helpers never modify their input; each returns a new slice
// so earlier snapshots stay valid.

// IndexOf returns the index of the first task with the given id, or -1.
func IndexOf(tasks []Task, id string) int {
	return slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
}

// Append returns tasks with t added at the end.
func Append(tasks []Task, t Task) []Task {
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, t)
}

// Toggle returns tasks with Completed negated on every record matching id.
// The second result is false when no record matched; tasks is then returned as is.
func Toggle(tasks []Task, id string) ([]Task, bool) {
	if IndexOf(tasks, id) < 0 {
		return tasks, false
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id {
			t = t.Toggled()
		}
		out[i] = t
	}
	return out, true
}

// Remove returns tasks without the records matching id.
// The second result is false when no record matched; tasks is then returned as is.
func Remove(tasks []Task, id string) ([]Task, bool) {
	if IndexOf(tasks, id) < 0 {
		return tasks, false
	}
	out := make([]Task, 0, len(tasks)-1)
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out, true
}
