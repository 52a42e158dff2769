package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/akettner/jire/internal/domain"
)

// ticketColumns is the full column list shared by every read and every
// RETURNING clause, so a snapshot always carries every field.
const ticketColumns = `rowid, name, description, project, status, assigned_to, notes, created_by, updated_by, created_at, updated_at`

// SQLiteTicketRepo implements TicketRepo using a SQLite database.
type SQLiteTicketRepo struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSQLiteTicketRepo creates a new SQLiteTicketRepo.
func NewSQLiteTicketRepo(db *sql.DB, logger zerolog.Logger) *SQLiteTicketRepo {
	return &SQLiteTicketRepo{db: db, logger: logger}
}

func (r *SQLiteTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM ticket WHERE rowid = ?`
	t, err := scanTicket(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching ticket %d: %w", id, err)
	}
	return t, nil
}

func (r *SQLiteTicketRepo) Create(ctx context.Context, name, description, project string, assignedTo *string, createdBy string, now time.Time) (*domain.Ticket, error) {
	// A single INSERT ... RETURNING statement makes the write and its
	// result read atomic: no other operation can interleave between them.
	query := `INSERT INTO ticket (name, description, project, status, assigned_to, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + ticketColumns

	var t *domain.Ticket
	err := withBusyRetry(ctx, r.logger, func() error {
		var scanErr error
		t, scanErr = scanTicket(r.db.QueryRowContext(ctx, query,
			name,
			description,
			project,
			string(domain.StatusTodo),
			nullableStringValue(assignedTo),
			createdBy,
			encodeTimestamp(now),
		))
		return scanErr
	})
	if err != nil {
		return nil, fmt.Errorf("inserting ticket: %w", err)
	}
	return t, nil
}

func (r *SQLiteTicketRepo) TransitionAssignment(ctx context.Context, id int64, status domain.Status, assignedTo *string, updatedBy string, now time.Time) (*domain.Ticket, error) {
	query := `UPDATE ticket SET
			status = ?,
			assigned_to = ?,
			updated_by = ?,
			updated_at = ?
		WHERE rowid = ?
		RETURNING ` + ticketColumns

	var t *domain.Ticket
	err := withBusyRetry(ctx, r.logger, func() error {
		var scanErr error
		t, scanErr = scanTicket(r.db.QueryRowContext(ctx, query,
			string(status),
			nullableStringValue(assignedTo),
			updatedBy,
			encodeTimestamp(now),
			id,
		))
		return scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("updating ticket %d: %w", id, err)
	}
	return t, nil
}

func (r *SQLiteTicketRepo) Complete(ctx context.Context, id int64, notes, updatedBy string, now time.Time) (*domain.Ticket, error) {
	// Completion always clears the assignee.
	query := `UPDATE ticket SET
			status = ?,
			notes = ?,
			assigned_to = NULL,
			updated_by = ?,
			updated_at = ?
		WHERE rowid = ?
		RETURNING ` + ticketColumns

	var t *domain.Ticket
	err := withBusyRetry(ctx, r.logger, func() error {
		var scanErr error
		t, scanErr = scanTicket(r.db.QueryRowContext(ctx, query,
			string(domain.StatusDone),
			notes,
			updatedBy,
			encodeTimestamp(now),
			id,
		))
		return scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("completing ticket %d: %w", id, err)
	}
	return t, nil
}

// List returns tickets matching the conjunction of the filter's
// predicates. The query is assembled from (clause, argument) pairs so
// clauses and bound parameters stay in lock-step by construction; no
// filter value is ever interpolated into the SQL text.
func (r *SQLiteTicketRepo) List(ctx context.Context, f Filter) ([]*domain.Ticket, error) {
	cols := aliasColumns("t", ticketColumns)
	query := `SELECT ` + cols + ` FROM ticket t`
	var args []interface{}

	// The FTS join narrows to matching rowids before the equality
	// predicates apply.
	if f.Search != "" {
		query += ` INNER JOIN ticket_fts ON ticket_fts.rowid = t.rowid AND ticket_fts MATCH ?`
		args = append(args, f.Search)
	}

	var conds []string
	if f.Status != "" {
		conds = append(conds, `t.status = ?`)
		args = append(args, string(f.Status))
	}
	if f.AssignedTo != "" {
		conds = append(conds, `t.assigned_to = ?`)
		args = append(args, f.AssignedTo)
	}
	if f.CreatedBy != "" {
		conds = append(conds, `t.created_by = ?`)
		args = append(args, f.CreatedBy)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}

	// Search results keep the index's relevance order; plain listings
	// follow row order.
	if f.Search != "" {
		query += ` ORDER BY ticket_fts.rank`
	} else {
		query += ` ORDER BY t.rowid`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ticket row: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tickets: %w", err)
	}
	return tickets, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTicket maps one raw row onto a Ticket. It is a pure mapping from
// scanned column values and is independent of which query produced them.
func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var t domain.Ticket
	var statusStr string
	var assignedTo, updatedBy sql.NullString
	var createdAt int64
	var updatedAt sql.NullInt64

	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.Project,
		&statusStr, &assignedTo, &t.Notes,
		&t.CreatedBy, &updatedBy,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = domain.Status(statusStr)
	t.AssignedTo = nullableString(assignedTo)
	t.UpdatedBy = nullableString(updatedBy)
	t.CreatedAt = decodeTimestamp(createdAt)
	t.UpdatedAt = decodeNullableTimestamp(updatedAt)

	return &t, nil
}

// aliasColumns prefixes every column in a comma-separated list with a
// table alias.
func aliasColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}
