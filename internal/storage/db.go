// ABOUTME: SQLite database connection and lifecycle for the reference record store.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Per-connection settings. The pool holds a single connection so they
// apply to every statement.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA foreign_keys = ON",
}

// DB is the SQLite-backed Repository.
type DB struct {
	db   *sql.DB
	path string
}

var _ Repository = (*DB)(nil)

// Open opens or creates the store at path, creating parent directories
// and the schema as needed.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	d := &DB{db: conn, path: path}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	if err := d.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	// The file exists once the first statement has run.
	if err := os.Chmod(path, 0600); err != nil && !os.IsNotExist(err) {
		_ = conn.Close()
		return nil, fmt.Errorf("restrict database permissions: %w", err)
	}
	return d, nil
}

// OpenDefault opens the store at DefaultDBPath.
func OpenDefault() (*DB, error) {
	return Open(DefaultDBPath())
}

// DataDir is $XDG_DATA_HOME/gymbot, falling back to ~/.local/share/gymbot.
func DataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "gymbot")
}

// DefaultDBPath is gymbot.db inside DataDir.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "gymbot.db")
}

// Path returns the file backing this store.
func (d *DB) Path() string {
	return d.path
}

// Ping verifies the connection is usable.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close releases the connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}
