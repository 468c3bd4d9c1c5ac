package domain

import (
	"iter"
	"slices"
)

// Snapshot is an immutable copy of the task collection at one revision.
// The zero value is an empty collection at revision 0.
type Snapshot struct {
	tasks    []Task
	revision uint64
}

// NewSnapshot copies tasks into a Snapshot.
func NewSnapshot(tasks []Task, revision uint64) Snapshot {
	return Snapshot{
		tasks:    slices.Clone(tasks),
		revision: revision,
	}
}

// Len returns the number of tasks.
func (s Snapshot) Len() int {
	return len(s.tasks)
}

// At returns the task at index i. It panics if i is out of range.
func (s Snapshot) At(i int) Task {
	return s.tasks[i]
}

// Tasks returns a copy of the tasks in insertion order.
func (s Snapshot) Tasks() []Task {
	return slices.Clone(s.tasks)
}

// All iterates over the tasks with their index.
func (s Snapshot) All() iter.Seq2[int, Task] {
	return func(yield func(int, Task) bool) {
		for i, t := range s.tasks {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Find returns the first task with the given id.
func (s Snapshot) Find(id string) (Task, bool) {
	i := IndexOf(s.tasks, id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Revision increases by one with every applied mutation.
func (s Snapshot) Revision() uint64 {
	return s.revision
}

// Update is what subscribers of the task store receive: the latest snapshot
// and, when a write failed, the error that was reported.
type Update struct {
	Snapshot Snapshot
	Err      error
}
