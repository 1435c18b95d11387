// Package kv provides the persistent key-value store backing all entity
// collections and settings. Two backends are available: plain JSON files
// (the default) and a single SQLite database.
package kv

// Store is an asynchronous-friendly key-value store. Values are opaque byte
// slices; callers own serialization.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key has never been written.
	Get(key string) ([]byte, bool, error)

	// Set writes the value for key durably.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Well-known keys used by the repositories.
const (
	KeyTasks      = "tasks"
	KeyCategories = "categories"
	KeySettings   = "settings"
)
