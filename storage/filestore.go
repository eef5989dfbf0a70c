package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by Get when no record exists for the key.
var ErrNotFound = errors.New("record not found")

// FileStore keeps every collection in a single JSON snapshot file.
// Writes go to a temp file first and are renamed over the original, so a
// crash mid-write never corrupts the store.
type FileStore struct {
	mu   sync.RWMutex
	path string
	data map[string]map[string]Record
}

// OpenFileStore loads (or creates) the snapshot at path.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	fs := &FileStore{path: path, data: make(map[string]map[string]Record)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, fs.flushLocked()
		}
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fs.data); err != nil {
			return nil, fmt.Errorf("corrupt store %s: %w", path, err)
		}
	}
	return fs, nil
}

func (fs *FileStore) flushLocked() error {
	tmp := fs.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fs.data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, fs.path)
}

func (fs *FileStore) Get(collection, key string) (Record, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	rec, ok := fs.data[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	return deepCopy(rec), nil
}

func (fs *FileStore) Put(collection, key string, rec Record) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	col, ok := fs.data[collection]
	if !ok {
		col = make(map[string]Record)
		fs.data[collection] = col
	}
	col[key] = deepCopy(rec)
	return fs.flushLocked()
}

func (fs *FileStore) Delete(collection, key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	col, ok := fs.data[collection]
	if !ok {
		return nil
	}
	if _, ok := col[key]; !ok {
		return nil
	}
	delete(col, key)
	return fs.flushLocked()
}

func (fs *FileStore) Filter(collection string, pred func(key string, rec Record) bool) (map[string]Record, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	out := make(map[string]Record)
	for key, rec := range fs.data[collection] {
		if pred(key, rec) {
			out[key] = deepCopy(rec)
		}
	}
	return out, nil
}

func (fs *FileStore) ForEach(collection string, fn func(key string, rec Record) error) error {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	for key, rec := range fs.data[collection] {
		if err := fn(key, deepCopy(rec)); err != nil {
			return err
		}
	}
	return nil
}

func (fs *FileStore) Close() error { return nil }

// deepCopy round-trips a record through JSON so callers never share
// mutable nested maps with the store.
func deepCopy(rec Record) Record {
	raw, err := json.Marshal(rec)
	if err != nil {
		// Records come from JSON in the first place; this cannot happen
		// for data that made it into the store.
		return Record{}
	}
	var out Record
	if err := json.Unmarshal(raw, &out); err != nil {
		return Record{}
	}
	return out
}
