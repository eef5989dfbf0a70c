package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	rec := Record{"credits": float64(100), "state": "open"}
	if err := fs.Put("accounts", "alice", rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := fs.Get("accounts", "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["credits"].(float64) != 100 || got["state"] != "open" {
		t.Errorf("got = %v", got)
	}

	if _, err := fs.Get("accounts", "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key err = %v, want ErrNotFound", err)
	}
	if _, err := fs.Get("ghosts", "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing collection err = %v, want ErrNotFound", err)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := fs.Put("accounts", "alice", Record{"credits": float64(42)}); err != nil {
		t.Fatalf("put: %v", err)
	}
	fs.Close()

	again, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := again.Get("accounts", "alice")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got["credits"].(float64) != 42 {
		t.Errorf("credits = %v, want 42", got["credits"])
	}
}

func TestFileStoreDelete(t *testing.T) {
	fs, err := OpenFileStore(filepath.Join(t.TempDir(), "records.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := fs.Put("accounts", "alice", Record{"credits": float64(1)}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := fs.Delete("accounts", "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := fs.Get("accounts", "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
	// Deleting again is a no-op.
	if err := fs.Delete("accounts", "alice"); err != nil {
		t.Errorf("second delete = %v, want nil", err)
	}
}

func TestFileStoreFilterAndForEach(t *testing.T) {
	fs, err := OpenFileStore(filepath.Join(t.TempDir(), "records.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, key := range []string{"a/cats", "a/dogs", "b/cats"} {
		if err := fs.Put("feeds", key, Record{"key": key}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	got, err := fs.Filter("feeds", func(key string, rec Record) bool {
		return key[0] == 'a'
	})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("filtered = %d records, want 2", len(got))
	}

	count := 0
	err = fs.ForEach("feeds", func(key string, rec Record) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("foreach: %v", err)
	}
	if count != 3 {
		t.Errorf("foreach visited %d, want 3", count)
	}
}

func TestFileStoreIsolatesCallers(t *testing.T) {
	fs, err := OpenFileStore(filepath.Join(t.TempDir(), "records.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec := Record{"nested": map[string]any{"x": float64(1)}}
	if err := fs.Put("accounts", "alice", rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Mutating what Get returned must not leak into the store.
	got, _ := fs.Get("accounts", "alice")
	got["nested"].(map[string]any)["x"] = float64(99)

	fresh, _ := fs.Get("accounts", "alice")
	if fresh["nested"].(map[string]any)["x"].(float64) != 1 {
		t.Error("store shares mutable state with callers")
	}
}
