// Package cache keeps a local SQLite copy of fetched scene metadata so
// records can be re-read without touching the network.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the scene-metadata cache database.
type DB struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path, creating
// parent directories as needed.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS scenes (
			id TEXT PRIMARY KEY,
			scene_type TEXT NOT NULL,
			raw TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Put stores the raw metadata payload for a scene, replacing any
// earlier copy.
func (d *DB) Put(id, sceneType, raw string) error {
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO scenes (id, scene_type, raw, fetched_at) VALUES (?, ?, ?, ?)`,
		id, sceneType, raw, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("caching scene %s: %w", id, err)
	}
	return nil
}

// Get returns the cached payload for a scene id. The second result is
// false when the scene has never been cached.
func (d *DB) Get(id string) (string, bool, error) {
	var raw string
	err := d.db.QueryRow(`SELECT raw FROM scenes WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cache: %w", err)
	}
	return raw, true, nil
}

// Count returns the number of cached scenes.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM scenes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache: %w", err)
	}
	return n, nil
}

// Clear removes every cached scene.
func (d *DB) Clear() error {
	if _, err := d.db.Exec(`DELETE FROM scenes`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
