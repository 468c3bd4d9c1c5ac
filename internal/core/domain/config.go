package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Backend names a persistence adapter implementation.
type Backend string

const (
	// BackendFile stores the slot as a JSON file.
	BackendFile Backend = "file"
	// BackendSQLite stores the slot as a row in a SQLite database.
	BackendSQLite Backend = "sqlite"
)

// Valid reports whether b names a supported backend.
func (b Backend) Valid() bool {
	switch b {
	case BackendFile, BackendSQLite:
		return true
	default:
		return false
	}
}

// StorageConfig selects and configures the persistence adapter.
type StorageConfig struct {
	Backend      Backend
	Dir          string
	Key          string
	WriteRetries int
	RetryBackoff time.Duration
}

// DisplayConfig holds presentation settings that reach the core.
type DisplayConfig struct {
	TimestampLayout string
}

// LogConfig holds logger settings.
type LogConfig struct {
	JSON  bool
	Trace bool
}

// Config is the resolved application configuration.
type Config struct {
	Storage StorageConfig
	Display DisplayConfig
	Log     LogConfig
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend:      BackendFile,
			Dir:          DataDirName,
			Key:          DefaultSlotKey,
			WriteRetries: 0,
			RetryBackoff: 100 * time.Millisecond,
		},
		Display: DisplayConfig{
			TimestampLayout: DefaultTimestampLayout,
		},
	}
}

// Validate checks the values a config file may have broken.
func (c Config) Validate() error {
	if !c.Storage.Backend.Valid() {
		return zerr.With(ErrUnknownBackend, "backend", string(c.Storage.Backend))
	}
	if c.Storage.Dir == "" {
		return zerr.With(ErrInvalidConfig, "field", "storage.dir")
	}
	if c.Storage.Key == "" {
		return zerr.With(ErrInvalidConfig, "field", "storage.key")
	}
	if c.Storage.WriteRetries < 0 {
		return zerr.With(ErrInvalidConfig, "field", "storage.write_retries")
	}
	if c.Storage.RetryBackoff < 0 {
		return zerr.With(ErrInvalidConfig, "field", "storage.retry_backoff")
	}
	return nil
}
