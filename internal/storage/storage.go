// Package storage manages the SQLite database: the device credential
// handle (the service's device-local storage) and the archive of
// generated contracts shown in the admin area.
package storage

import (
	"database/sql"
	"log/slog"

	"github.com/contratoseguro/contratos/internal/errl"
	_ "github.com/mattn/go-sqlite3"
)

// Database manages SQLite operations
type Database struct {
	path string
	db   *sql.DB
}

// New creates a new database instance for the given file path.
func New(path string) *Database {
	if path == "" {
		path = "./contratos.db"
	}
	return &Database{path: path}
}

// Initialize opens the database and creates tables.
func (d *Database) Initialize() error {
	db, err := sql.Open("sqlite3", d.path)
	if err != nil {
		return errl.Errorf("failed to open database: %w", err)
	}
	d.db = db

	if err := d.createTables(); err != nil {
		return errl.Errorf("failed to create tables: %w", err)
	}

	slog.Info("Database initialized", "path", d.path)
	return nil
}

// createTables creates all necessary tables
func (d *Database) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS device_credential (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			credential_id TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS contracts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			placa TEXT NOT NULL,
			buyer_name TEXT NOT NULL,
			filename TEXT NOT NULL,
			record BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return errl.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
