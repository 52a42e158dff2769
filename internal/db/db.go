package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Options tunes how the database is opened.
type Options struct {
	// BusyTimeoutMS is how long the engine waits on a conflicting lock
	// before reporting SQLITE_BUSY. Zero falls back to DefaultBusyTimeoutMS.
	BusyTimeoutMS int
}

// DefaultBusyTimeoutMS is the lock-wait applied when the config does not
// override it.
const DefaultBusyTimeoutMS = 5000

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and a busy timeout, and ensures the schema exists.
func OpenDB(path string, opts Options) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each connection to ":memory:" is a distinct database; pin the pool
	// to one connection so the schema is visible everywhere.
	if path == ":memory:" {
		database.SetMaxOpenConns(1)
	}

	// WAL lets concurrent readers proceed while one writer holds the lock.
	if _, err := database.Exec("PRAGMA journal_mode = WAL"); err != nil {
		database.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	timeout := opts.BusyTimeoutMS
	if timeout <= 0 {
		timeout = DefaultBusyTimeoutMS
	}
	if _, err := database.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", timeout)); err != nil {
		database.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if err := EnsureSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return database, nil
}
