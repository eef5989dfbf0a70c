// Package storage provides the bot's key-value record store. Records are
// free-form JSON objects grouped into named collections ("accounts",
// "pokemon", "feeds", ...). Two backends are available: a flat-file JSON
// snapshot (the default) and Postgres.
package storage

// Record is a single stored JSON object.
type Record = map[string]any

// Store is the persistence surface used by the bank and the feature
// commands. Implementations must make Put atomic with respect to a single
// collection/key pair.
type Store interface {
	// Get returns the record for key, or ErrNotFound.
	Get(collection, key string) (Record, error)
	// Put inserts or replaces the record for key.
	Put(collection, key string, rec Record) error
	// Delete removes the record for key. Deleting a missing key is a no-op.
	Delete(collection, key string) error
	// Filter returns all records in the collection matching pred.
	Filter(collection string, pred func(key string, rec Record) bool) (map[string]Record, error)
	// ForEach visits every record in the collection.
	ForEach(collection string, fn func(key string, rec Record) error) error
	Close() error
}
