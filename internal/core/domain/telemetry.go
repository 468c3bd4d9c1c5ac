package domain

// Span names opened by the task store.
const (
	SpanInitialize = "taskstore.initialize"
	SpanAdd        = "taskstore.add"
	SpanToggle     = "taskstore.toggle"
	SpanRemove     = "taskstore.remove"
	SpanSave       = "taskstore.save"
)

// Span attribute keys.
const (
	// AttrTaskID is the id a mutation was applied to.
	AttrTaskID = "task.id"
	// AttrTaskFound reports whether a toggle or remove matched.
	AttrTaskFound = "task.found"
	// AttrTasksFound reports whether the initial load found a slot.
	AttrTasksFound = "tasks.found"
	// AttrTasksCount is the collection size after the operation.
	AttrTasksCount = "tasks.count"
	// AttrRevision is the snapshot revision the operation produced or wrote.
	AttrRevision = "snapshot.revision"
	// AttrSaveSkipped is set when a newer snapshot was already written.
	AttrSaveSkipped = "save.skipped"
)

// StoreSpans lists every span name the task store opens.
var StoreSpans = []string{SpanInitialize, SpanAdd, SpanToggle, SpanRemove, SpanSave}
