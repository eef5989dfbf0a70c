// Package ledger is the append-only per-account transaction log. Every
// balance-affecting operation appends one newline-delimited JSON record to
// the owning account's file; records are never edited, only appended or
// removed wholesale when the account is deleted.
package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Record is one ledger line: a millisecond timestamp plus a free-form
// payload describing the mutation (action, prev, transfer, next, ...).
type Record struct {
	T    int64          `json:"t"`
	Data map[string]any `json:"data"`
}

// Logger writes and reads per-account ledger files under a single
// directory. Callers serialize mutations per account; the internal mutex
// only guards against interleaved writes to the same file from unrelated
// code paths.
type Logger struct {
	mu  sync.Mutex
	dir string
}

// New creates the ledger directory if needed.
func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Logger{dir: dir}, nil
}

func (l *Logger) file(accountID string) string {
	return filepath.Join(l.dir, accountID+".ndjson")
}

// Append writes one record with the current timestamp.
func (l *Logger) Append(accountID string, data map[string]any) error {
	return l.append(accountID, Record{T: time.Now().UnixMilli(), Data: data})
}

func (l *Logger) append(accountID string, rec Record) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding ledger record: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.file(accountID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}

// ReadAll returns every record in file order. A missing file is an empty
// history, not an error; malformed lines are skipped with a warning.
func (l *Logger) ReadAll(accountID string) ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.file(accountID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var records []Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			log.WithField("account", accountID).WithError(err).Warn("skipping malformed ledger line")
			continue
		}
		records = append(records, rec)
	}
	return records, sc.Err()
}

// Delete removes the account's ledger file. Deleting a missing file is a
// no-op.
func (l *Logger) Delete(accountID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := os.Remove(l.file(accountID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
