package testutil

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	"github.com/akettner/jire/internal/db"
)

// NewTestDB creates an in-memory SQLite database with the full schema
// applied. The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:", db.Options{})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() zerolog.Logger {
	return zerolog.Nop()
}

// StringPtr returns a pointer to s, for nullable ticket fields.
func StringPtr(s string) *string {
	return &s
}
