// Package database is the persistence adapter: a handful of JSON blobs keyed
// by collection name in a single SQLite table, shared by every node on the
// machine. Reads never fail from the caller's point of view — a missing or
// corrupt row is logged and the caller's default is left in place.
package database

import (
	"database/sql"
	"encoding/json"
	"log"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Persisted keys. Every node reads and writes the same five blobs.
const (
	KeyUsers         = "users"
	KeyPosts         = "posts"
	KeyNotifications = "notifications"
	KeyMessages      = "messages"
	KeyCurrentUser   = "currentUser"
)

// DB wraps the shared key-value store.
type DB struct {
	sql *sql.DB
}

// Open opens (creating if necessary) the store at path. Use a file path
// shared between nodes for cross-node sync, or a throwaway temp file in
// tests.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Load reads the blob stored under key into out. On a missing key or a
// decode failure it logs and leaves out untouched, so callers pre-fill out
// with the default they want in that case.
func (d *DB) Load(key string, out any) {
	var raw string
	err := d.sql.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return
	}
	if err != nil {
		log.Printf("database: reading %q: %v", key, err)
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("database: corrupt value under %q, using default: %v", key, err)
	}
}

// Save serializes v and writes it under key in a single upsert, so readers
// see either the previous value or the new one, never a partial write. A
// failure is logged and leaves the prior value in place.
func (d *DB) Save(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("database: encoding %q: %v", key, err)
		return
	}
	if _, err := d.sql.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(raw),
	); err != nil {
		log.Printf("database: writing %q: %v", key, err)
	}
}
