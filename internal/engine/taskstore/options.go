package taskstore

import (
	"time"

	"github.com/google/uuid"
)

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the task id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock replaces the time source used for CreatedAt.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithTimestampLayout sets the layout CreatedAt is formatted with.
func WithTimestampLayout(layout string) Option {
	return func(s *Store) {
		if layout != "" {
			s.layout = layout
		}
	}
}

// WithWriteRetries retries a failed write up to n more times, sleeping backoff between attempts.
func WithWriteRetries(n int, backoff time.Duration) Option {
	return func(s *Store) {
		s.retries = max(n, 0)
		s.backoff = max(backoff, 0)
	}
}

// newTaskID returns a UUIDv7: a millisecond timestamp followed by a counter and
// random bits, so ids sort by creation time and never repeat within a process.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
