package storage

import (
	"database/sql"
	"encoding/json"
	"errors"

	_ "github.com/lib/pq"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS records (
    collection TEXT NOT NULL,
    key TEXT NOT NULL,
    record JSONB NOT NULL,
    PRIMARY KEY (collection, key)
);`

// PGStore backs the record store with a Postgres table. Selected when
// DATABASE_URL is set; otherwise the bot runs on the FileStore.
type PGStore struct {
	db *sql.DB
}

// OpenPGStore connects to Postgres and ensures the schema exists.
func OpenPGStore(dbURL string) (*PGStore, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(pgSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &PGStore{db: db}, nil
}

func (p *PGStore) Get(collection, key string) (Record, error) {
	var raw []byte
	err := p.db.QueryRow(
		"SELECT record FROM records WHERE collection = $1 AND key = $2",
		collection, key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (p *PGStore) Put(collection, key string, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(`
		INSERT INTO records (collection, key, record)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, key) DO UPDATE SET record = EXCLUDED.record
	`, collection, key, raw)
	return err
}

func (p *PGStore) Delete(collection, key string) error {
	_, err := p.db.Exec(
		"DELETE FROM records WHERE collection = $1 AND key = $2",
		collection, key,
	)
	return err
}

func (p *PGStore) Filter(collection string, pred func(key string, rec Record) bool) (map[string]Record, error) {
	out := make(map[string]Record)
	err := p.ForEach(collection, func(key string, rec Record) error {
		if pred(key, rec) {
			out[key] = rec
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PGStore) ForEach(collection string, fn func(key string, rec Record) error) error {
	rows, err := p.db.Query("SELECT key, record FROM records WHERE collection = $1", collection)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return err
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		if err := fn(key, rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (p *PGStore) Close() error { return p.db.Close() }
