// Package db archives the results of closed surveys in SQLite.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const dbDriver = "sqlite3"

// Store is the survey result archive.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the archive at path and makes sure the tables
// exist. ":memory:" gives a private in-memory archive.
func Open(path string) (*Store, error) {
	db, err := sql.Open(dbDriver, path)
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases from splitting across connections.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
