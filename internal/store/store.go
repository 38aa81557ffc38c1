// Package store persists the catalogue in a local SQLite database file.
//
// The store is the sole owner of durable state. It opens the database with a
// single connection because SQLite does not handle multiple writers well and
// this is a single-user application; every operation is one statement, so
// there is no partial-write state to recover from.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when no component matches the requested ID.
var ErrNotFound = errors.New("component not found")

// Store wraps the SQLite database holding the catalogue.
type Store struct {
	db *sql.DB
}

// Open opens the catalogue database at path, creating the file and parent
// directory if necessary, and applies the schema. The special path
// ":memory:" opens a throwaway in-memory database, used by tests.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		// modernc.org/sqlite only understands _pragma-style parameters;
		// the _journal_mode/_busy_timeout spellings of other drivers are
		// silently dropped.
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Single connection: SQLite is a single-writer store and in-memory
	// databases exist per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db}, nil
}

// migrate creates the tables if they do not exist.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS components (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL,
			category      TEXT NOT NULL DEFAULT '',
			description   TEXT NOT NULL DEFAULT '',
			quantity      INTEGER NOT NULL DEFAULT 0,
			unit          TEXT NOT NULL DEFAULT 'pieces',
			cost_per_unit TEXT NOT NULL DEFAULT '0',
			supplier      TEXT NOT NULL DEFAULT '',
			location      TEXT NOT NULL DEFAULT '',
			notes         TEXT NOT NULL DEFAULT '',
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_components_name ON components(name)`,
		`CREATE INDEX IF NOT EXISTS idx_components_category ON components(category)`,
		`CREATE TABLE IF NOT EXISTS catalogue_settings (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			title      TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
