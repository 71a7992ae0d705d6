package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with archive methods
type DB struct {
	*sql.DB
}

// New opens the sqlite archive at path, creating the file if needed
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// WAL lets web readers run while the session writes
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	return &DB{db}, nil
}

// InitSchema creates the archive tables
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS check_files (
        name TEXT PRIMARY KEY,
        loaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS check_results (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        file TEXT NOT NULL REFERENCES check_files(name),
        endpoint TEXT NOT NULL,
        title TEXT NOT NULL,
        timestamp INTEGER NOT NULL, -- unix nanoseconds
        threshold INTEGER NOT NULL DEFAULT 0,
        healthy BOOLEAN NOT NULL DEFAULT 0,
        degraded BOOLEAN NOT NULL DEFAULT 0,
        down BOOLEAN NOT NULL DEFAULT 0,
        message TEXT,
        times TEXT NOT NULL -- JSON array of samples
    );

    CREATE INDEX IF NOT EXISTS idx_results_file ON check_results(file);
    CREATE INDEX IF NOT EXISTS idx_results_timestamp ON check_results(timestamp);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}
