// Package index stores career datasets in SQLite so they can be served
// without the original YAML file.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS titles (
	id       INTEGER PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS people (
	id       INTEGER PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS next_title (
	source   INTEGER NOT NULL REFERENCES titles(id) ON DELETE CASCADE,
	target   INTEGER NOT NULL REFERENCES titles(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	UNIQUE(source, target)
);

CREATE TABLE IF NOT EXISTS held (
	person_id INTEGER NOT NULL REFERENCES people(id) ON DELETE CASCADE,
	title_id  INTEGER NOT NULL REFERENCES titles(id) ON DELETE CASCADE,
	seq       INTEGER NOT NULL,
	PRIMARY KEY (person_id, seq)
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_next_title_source ON next_title(source);
CREATE INDEX IF NOT EXISTS idx_held_person ON held(person_id);
`

// DB wraps a sql.DB with dataset-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply core schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
