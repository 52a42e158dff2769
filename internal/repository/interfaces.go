package repository

import (
	"context"
	"errors"
	"time"

	"github.com/akettner/jire/internal/domain"
)

// ErrNotFound reports that no ticket row matches the requested ID.
var ErrNotFound = errors.New("ticket not found")

// ErrBusy reports that the database stayed locked by another process
// after the bounded retry schedule was exhausted.
var ErrBusy = errors.New("database is busy")

// Filter holds the optional listing predicates. Zero-valued fields are
// not applied; an all-zero Filter returns every ticket.
type Filter struct {
	Status     domain.Status
	AssignedTo string
	CreatedBy  string
	Search     string
}

type TicketRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Create(ctx context.Context, name, description, project string, assignedTo *string, createdBy string, now time.Time) (*domain.Ticket, error)
	TransitionAssignment(ctx context.Context, id int64, status domain.Status, assignedTo *string, updatedBy string, now time.Time) (*domain.Ticket, error)
	Complete(ctx context.Context, id int64, notes, updatedBy string, now time.Time) (*domain.Ticket, error)
	List(ctx context.Context, f Filter) ([]*domain.Ticket, error)
}
