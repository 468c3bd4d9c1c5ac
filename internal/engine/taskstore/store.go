// Package taskstore holds the in-memory task collection and mirrors it into a
// TaskRepository after every mutation.
package taskstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/tasklist/internal/core/domain"
	"go.trai.ch/tasklist/internal/core/ports"
)

// Store owns the ordered task collection.
//
// Mutations are serialized and applied in call order. Each one publishes a new
// snapshot to subscribers and then writes that snapshot to the repository in
// the background. A failed write leaves the in-memory collection as it is and
// is reported to subscribers through Update.Err. It stays pending, see Err,
// until a later write succeeds.
type Store struct {
	repo   ports.TaskRepository
	logger ports.Logger
	tracer ports.Tracer

	newID   func() string
	now     func() time.Time
	layout  string
	retries int
	backoff time.Duration

	mu       sync.Mutex
	tasks    []domain.Task
	revision uint64
	subs     map[*subscription]struct{}
	closed   bool
	lastErr  error

	writes   *inflight
	writeMu  sync.Mutex
	written  uint64
	stop     chan struct{}
	stopOnce sync.Once
}

type subscription struct {
	ch chan domain.Update
}

// New creates an empty Store backed by repo.
func New(repo ports.TaskRepository, logger ports.Logger, tracer ports.Tracer, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		logger: logger,
		tracer: tracer,
		newID:  newTaskID,
		now:    time.Now,
		layout: domain.DefaultTimestampLayout,
		subs:   make(map[*subscription]struct{}),
		writes: newInflight(),
		stop:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the stored collection. A found payload replaces the
// collection verbatim; an absent one leaves it empty. When loading fails the
// store stays empty and usable, and the returned error wraps ErrPersistenceLoad.
func (s *Store) Initialize(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, domain.SpanInitialize)
	defer span.End()

	tasks, found, err := s.repo.Load(ctx)
	if err != nil {
		err = errors.Join(domain.ErrPersistenceLoad, err)
		span.RecordError(err)
		return err
	}
	span.SetAttribute(domain.AttrTasksFound, found)
	if !found {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.revision++
	span.SetAttribute(domain.AttrTasksCount, len(s.tasks))
	span.SetAttribute(domain.AttrRevision, s.revision)
	s.publishLocked(domain.Update{Snapshot: s.snapshotLocked()})
	return nil
}

// Add appends a task built from rawText and returns it.
// Blank text is rejected with ErrEmptyTaskText and nothing changes.
func (s *Store) Add(ctx context.Context, rawText string) (domain.Task, error) {
	ctx, span := s.tracer.Start(ctx, domain.SpanAdd)
	defer span.End()

	task, err := domain.NewTask(s.newID(), rawText, s.now(), s.layout)
	if err != nil {
		span.RecordError(err)
		return domain.Task{}, err
	}
	span.SetAttribute(domain.AttrTaskID, task.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked(ctx, span, domain.Append(s.tasks, task))
	return task, nil
}

// Toggle flips Completed on every task with the given id.
// It reports false, and writes nothing, when no task matched.
func (s *Store) Toggle(ctx context.Context, id string) bool {
	ctx, span := s.tracer.Start(ctx, domain.SpanToggle)
	defer span.End()
	span.SetAttribute(domain.AttrTaskID, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, ok := domain.Toggle(s.tasks, id)
	span.SetAttribute(domain.AttrTaskFound, ok)
	if !ok {
		return false
	}
	s.commitLocked(ctx, span, tasks)
	return true
}

// Remove deletes every task with the given id.
// It reports false, and writes nothing, when no task matched.
func (s *Store) Remove(ctx context.Context, id string) bool {
	ctx, span := s.tracer.Start(ctx, domain.SpanRemove)
	defer span.End()
	span.SetAttribute(domain.AttrTaskID, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, ok := domain.Remove(s.tasks, id)
	span.SetAttribute(domain.AttrTaskFound, ok)
	if !ok {
		return false
	}
	s.commitLocked(ctx, span, tasks)
	return true
}

// Snapshot returns the current collection.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Subscribe returns a channel carrying the latest update, starting with the
// current snapshot. A slow reader only ever sees the newest update.
// The returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan domain.Update, func()) {
	sub := &subscription{ch: make(chan domain.Update, 1)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}
	sub.ch <- domain.Update{Snapshot: s.snapshotLocked()}
	s.subs[sub] = struct{}{}

	return sub.ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[sub]; ok {
			delete(s.subs, sub)
			close(sub.ch)
		}
	}
}

// Flush blocks until every issued write has finished or ctx is done.
func (s *Store) Flush(ctx context.Context) error {
	select {
	case <-s.writes.wait():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the failure of the newest write, wrapped in ErrPersistenceWrite.
// It is nil when that write succeeded or nothing was written yet.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close waits for pending writes and closes every subscription. Once ctx is
// done, writes give up their remaining retries, but an attempt already
// started is still waited for. Close returns Err.
// The repository is left open; its owner closes it.
func (s *Store) Close(ctx context.Context) error {
	if s.Flush(ctx) != nil {
		s.stopOnce.Do(func() { close(s.stop) })
		<-s.writes.wait()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for sub := range s.subs {
		close(sub.ch)
		delete(s.subs, sub)
	}
	return s.lastErr
}

func (s *Store) snapshotLocked() domain.Snapshot {
	return domain.NewSnapshot(s.tasks, s.revision)
}

// commitLocked installs tasks as the new collection, publishes it and issues
// the write. The caller holds s.mu.
func (s *Store) commitLocked(ctx context.Context, span ports.Span, tasks []domain.Task) {
	s.tasks = tasks
	s.revision++
	snap := s.snapshotLocked()
	span.SetAttribute(domain.AttrTasksCount, snap.Len())
	span.SetAttribute(domain.AttrRevision, snap.Revision())

	s.publishLocked(domain.Update{Snapshot: snap})

	ctx = context.WithoutCancel(ctx)
	s.writes.add()
	go func() {
		defer s.writes.done()
		s.save(ctx, snap)
	}()
}

// publishLocked hands u to every subscriber, replacing an unread update.
// Only publishLocked sends on subscriber channels and it runs under s.mu,
// so after draining there is always room for u.
func (s *Store) publishLocked(u domain.Update) {
	if s.closed {
		return
	}
	for sub := range s.subs {
		select {
		case sub.ch <- u:
		default:
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- u
		}
	}
}

// save writes snap unless a newer revision has already been written.
func (s *Store) save(ctx context.Context, snap domain.Snapshot) {
	ctx, span := s.tracer.Start(ctx, domain.SpanSave)
	defer span.End()
	span.SetAttribute(domain.AttrRevision, snap.Revision())
	span.SetAttribute(domain.AttrTasksCount, snap.Len())

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if snap.Revision() <= s.written {
		span.SetAttribute(domain.AttrSaveSkipped, true)
		return
	}

	err := s.saveWithRetry(ctx, snap.Tasks())
	s.written = snap.Revision()
	if err == nil {
		s.mu.Lock()
		s.lastErr = nil
		s.mu.Unlock()
		return
	}

	err = errors.Join(domain.ErrPersistenceWrite, err)
	span.RecordError(err)
	s.logger.Warn(fmt.Sprintf("tasks were not saved (revision %d): %v", snap.Revision(), err))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	s.publishLocked(domain.Update{Snapshot: s.snapshotLocked(), Err: err})
}

// saveWithRetry stops retrying early once Close gives up waiting.
func (s *Store) saveWithRetry(ctx context.Context, tasks []domain.Task) error {
	for attempt := 0; ; attempt++ {
		err := s.repo.Save(ctx, tasks)
		if err == nil || attempt >= s.retries {
			return err
		}

		timer := time.NewTimer(s.backoff)
		select {
		case <-timer.C:
		case <-s.stop:
			timer.Stop()
			return err
		}
	}
}
