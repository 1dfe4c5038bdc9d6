// Package storage provides the SQLite implementation of the history
// port.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/keydoro/keydoro/internal/ports"

	_ "modernc.org/sqlite"
)

// New opens (or creates) the history database at dbPath and migrates
// the schema.
func New(dbPath string) (ports.History, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	repo := newHistoryRepository(db)
	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

// NewMemory opens an in-memory history database for testing.
func NewMemory() (ports.History, error) {
	return New(":memory:")
}
