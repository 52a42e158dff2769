package db

import (
	"database/sql"
	"fmt"
)

// EnsureSchema brings an empty or pre-existing database to the expected
// shape without touching existing data. Every statement uses IF NOT
// EXISTS semantics, so this is safe to run on every process start and
// from a second process racing the first (a held lock surfaces as a
// busy error, not corruption).
func EnsureSchema(database *sql.DB) error {
	for i, stmt := range schema {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}

// schema is the ticket table, its FTS5 shadow index, and the two
// triggers that keep the index in lock-step with the table. The index
// mirrors the searchable subset of ticket fields, tokenized with porter
// stemming and ASCII folding so "running" matches "run" and accents or
// case do not affect matching. The update trigger deletes before
// reinserting so a rewritten row never leaves a stale index entry.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS ticket (
		name        TEXT,
		description TEXT,
		project     TEXT,
		status      TEXT NOT NULL,
		assigned_to TEXT NULL,
		notes       TEXT DEFAULT '',
		created_by  TEXT NOT NULL,
		created_at  INTEGER NOT NULL,
		updated_by  TEXT NULL,
		updated_at  INTEGER NULL
	)`,

	`CREATE VIRTUAL TABLE IF NOT EXISTS ticket_fts USING fts5(
		name,
		description,
		project,
		status,
		assigned_to,
		created_by,
		tokenize = 'porter ascii',
		content=ticket,
		content_rowid=rowid
	)`,

	`CREATE TRIGGER IF NOT EXISTS ticket_fts_insert AFTER INSERT ON ticket
	BEGIN
		INSERT INTO ticket_fts (rowid, name, description, project, status, assigned_to, created_by)
		VALUES (NEW.rowid, NEW.name, NEW.description, NEW.project, NEW.status, NEW.assigned_to, NEW.created_by);
	END`,

	// The 'delete' command must carry the OLD column values: with an
	// external-content table FTS5 cannot recover them from the base row,
	// which already holds the new values by the time the trigger fires.
	`CREATE TRIGGER IF NOT EXISTS ticket_fts_update AFTER UPDATE ON ticket
	BEGIN
		INSERT INTO ticket_fts (ticket_fts, rowid, name, description, project, status, assigned_to, created_by)
		VALUES ('delete', OLD.rowid, OLD.name, OLD.description, OLD.project, OLD.status, OLD.assigned_to, OLD.created_by);
		INSERT INTO ticket_fts (rowid, name, description, project, status, assigned_to, created_by)
		VALUES (NEW.rowid, NEW.name, NEW.description, NEW.project, NEW.status, NEW.assigned_to, NEW.created_by);
	END`,
}
