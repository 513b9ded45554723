// Package storage provides the durable key-value store and the session
// store layered on top of it.
package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// KV is a durable string key-value table in SQLite. Writes are last-write-
// wins on the same key; there is no transactional grouping across keys.
type KV struct {
	db *sql.DB
}

// OpenKV opens (creating if needed) the key-value database in dataDir.
func OpenKV(dataDir string) (*KV, error) {
	dbPath := filepath.Join(dataDir, "llmchat.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	kv := &KV{db: db}
	if err := kv.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return kv, nil
}

func (kv *KV) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := kv.db.Exec(schema)
	return err
}

// Put stores value under key, replacing any previous value.
func (kv *KV) Put(key, value string) error {
	_, err := kv.db.Exec(
		`INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value,
	)
	return err
}

// Get returns the value stored under key. The second return is false when
// the key is absent.
func (kv *KV) Get(key string) (string, bool, error) {
	var value string
	err := kv.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (kv *KV) Delete(key string) error {
	_, err := kv.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Close closes the underlying database.
func (kv *KV) Close() error {
	return kv.db.Close()
}
