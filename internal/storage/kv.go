// Package storage provides the app's simple key-value settings store.
package storage

// KV is a flat byte store keyed by string. It is the local persistence layer
// behind the favorites collection.
type KV interface {
	// Get retrieves the value for key. Returns the value and true if
	// present, otherwise nil and false.
	Get(key string) ([]byte, bool)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases resources.
	Close() error
}
