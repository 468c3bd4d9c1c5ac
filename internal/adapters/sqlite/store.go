// Package sqlite keeps task slots as rows of a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tasklist/internal/core/domain"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	checksum   INTEGER NOT NULL,
	updated_at TEXT NOT NULL
);`

// errChecksumMismatch is joined with ErrSlotMalformed when a row's payload
// does not hash to its stored checksum.
var errChecksumMismatch = zerr.New("slot checksum mismatch")

// Store implements ports.TaskRepository over one row of the slots table.
type Store struct {
	db  *sql.DB
	key string
	now func() time.Time

	mu     sync.Mutex
	closed bool
}

// Open opens (creating when needed) the database at path and returns the
// Store for slot key.
func Open(ctx context.Context, path, key string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		schema,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
		}
	}

	return &Store{db: db, key: key, now: time.Now}, nil
}

// Load reads the slot row. A missing row reports found as false.
func (s *Store) Load(ctx context.Context) ([]domain.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, domain.ErrStoreClosed
	}

	var (
		value    []byte
		checksum int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, checksum FROM slots WHERE key = ?`, s.key,
	).Scan(&value, &checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, s.wrap(err, domain.ErrStoreReadFailed)
	}

	if sum(value) != checksum {
		return nil, false, zerr.With(errors.Join(domain.ErrSlotMalformed, errChecksumMismatch), "key", s.key)
	}

	tasks, found, err := domain.UnmarshalTasks(value)
	if err != nil {
		return nil, false, zerr.With(err, "key", s.key)
	}
	return tasks, found, nil
}

// Save upserts the slot row with the encoded collection.
func (s *Store) Save(ctx context.Context, tasks []domain.Task) error {
	value, err := domain.MarshalTasks(tasks)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, checksum, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			checksum = excluded.checksum,
			updated_at = excluded.updated_at`,
		s.key, value, sum(value), s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return s.wrap(err, domain.ErrStoreWriteFailed)
	}
	return nil
}

// Close closes the database. Later calls do nothing.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) wrap(err, sentinel error) error {
	return zerr.With(zerr.Wrap(err, sentinel.Error()), "key", s.key)
}

// sum is the xxhash64 of the payload, stored as SQLite's signed INTEGER.
func sum(value []byte) int64 {
	return int64(xxhash.Sum64(value)) //nolint:gosec // bit pattern is preserved
}
