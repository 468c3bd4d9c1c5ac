package sqlite

import "database/sql"

// DB exposes the handle so tests can tamper with rows.
func (s *Store) DB() *sql.DB {
	return s.db
}
