package service

import (
	"context"
	"errors"

	"github.com/akettner/jire/internal/domain"
	"github.com/akettner/jire/internal/repository"
)

// ErrEmptyName rejects tickets whose name is empty after trimming.
var ErrEmptyName = errors.New("ticket name must not be empty")

// ErrTicketDone rejects transitions out of the terminal DONE state.
var ErrTicketDone = errors.New("ticket is DONE and cannot be transitioned")

type TicketService interface {
	Get(ctx context.Context, id int64) (*domain.Ticket, error)
	// Create opens a new TODO ticket. An empty assignTo defaults to the
	// caller identity.
	Create(ctx context.Context, name, description, project, assignTo string) (*domain.Ticket, error)
	// MarkTodo moves a ticket back to TODO. An empty assignTo clears the
	// assignee.
	MarkTodo(ctx context.Context, id int64, assignTo string) (*domain.Ticket, error)
	// MarkDoing moves a ticket to DOING. An empty assignTo defaults to
	// the caller identity.
	MarkDoing(ctx context.Context, id int64, assignTo string) (*domain.Ticket, error)
	// MarkDone completes a ticket: status DONE, notes recorded, assignee
	// cleared.
	MarkDone(ctx context.Context, id int64, notes string) (*domain.Ticket, error)
	List(ctx context.Context, f repository.Filter) ([]*domain.Ticket, error)
}
