package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrEmptyTaskText is returned when a task is submitted with blank text.
	ErrEmptyTaskText = zerr.New("please type a task")

	// ErrPersistenceLoad is returned when the initial load fails or yields malformed data.
	// The store stays usable with an empty collection.
	ErrPersistenceLoad = zerr.New("failed to load tasks")

	// ErrPersistenceWrite is reported when a snapshot could not be written after a mutation.
	// The in-memory mutation is kept.
	ErrPersistenceWrite = zerr.New("failed to save tasks")

	// ErrSlotMalformed is returned when a stored payload cannot be decoded.
	ErrSlotMalformed = zerr.New("stored tasks are malformed")

	// ErrSlotMarshalFailed is returned when a collection cannot be encoded.
	ErrSlotMarshalFailed = zerr.New("failed to encode tasks")

	// ErrStoreOpenFailed is returned when a persistence backend cannot be opened.
	ErrStoreOpenFailed = zerr.New("failed to open task store")

	// ErrStoreCreateFailed is returned when the store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create task store directory")

	// ErrStoreReadFailed is returned when the slot cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read task slot")

	// ErrStoreWriteFailed is returned when the slot cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write task slot")

	// ErrStoreClosed is returned when a closed backend is used.
	ErrStoreClosed = zerr.New("task store is closed")

	// ErrUnknownBackend is returned when the configured storage backend is not supported.
	ErrUnknownBackend = zerr.New("unknown storage backend, expected 'file' or 'sqlite'")

	// ErrUnknownMode is returned for a --mode value other than auto, tui, linear or ci.
	ErrUnknownMode = zerr.New("unknown output mode, expected 'auto', 'tui', 'linear' or 'ci'")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")
)

// IsValidationError reports whether err was caused by user input rather than storage.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTaskText)
}
