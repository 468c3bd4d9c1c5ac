package domain

import "path/filepath"

const (
	// DataDirName is the default directory holding task slots.
	DataDirName = ".tasklist"

	// DefaultSlotKey is the fixed identifier of the durable task slot.
	DefaultSlotKey = "todolist_tasks"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "tasklist.yaml"

	// SQLiteFileName is the database file used by the sqlite backend.
	SQLiteFileName = "tasks.db"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// SlotPath returns the JSON file holding the slot key inside dir.
func SlotPath(dir, key string) string {
	return filepath.Join(dir, key+".json")
}

// SQLitePath returns the database path inside dir.
func SQLitePath(dir string) string {
	return filepath.Join(dir, SQLiteFileName)
}
