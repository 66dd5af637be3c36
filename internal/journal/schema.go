// Package journal provides a SQLite-backed record of completed exports.
//
// The journal is observational: staleness decisions are made from file
// modification times, never from journal state. It exists so the status
// API can report what a long-running watch process has done.
package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS exports (
	path        TEXT PRIMARY KEY,
	slug        TEXT NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	checksum    TEXT NOT NULL DEFAULT '',
	exported_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS assets (
	name      TEXT PRIMARY KEY,
	slug      TEXT NOT NULL,
	copied_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exports_exported_at ON exports(exported_at);
`

// DB wraps a sql.DB with journal-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite journal and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("journal: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
