package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akettner/jire/internal/domain"
	"github.com/akettner/jire/internal/repository"
)

type ticketService struct {
	tickets repository.TicketRepo
	actor   string
	clock   func() time.Time
}

// NewTicketService creates a TicketService acting on behalf of actor.
// The clock is injected so tests can pin timestamps; pass time.Now in
// production wiring.
func NewTicketService(tickets repository.TicketRepo, actor string, clock func() time.Time) TicketService {
	return &ticketService{tickets: tickets, actor: actor, clock: clock}
}

func (s *ticketService) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

func (s *ticketService) Create(ctx context.Context, name, description, project, assignTo string) (*domain.Ticket, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	assignee := assignTo
	if assignee == "" {
		assignee = s.actor
	}
	return s.tickets.Create(ctx, name, description, project, &assignee, s.actor, s.clock())
}

func (s *ticketService) MarkTodo(ctx context.Context, id int64, assignTo string) (*domain.Ticket, error) {
	// Omitted assignee clears the field.
	var assignee *string
	if assignTo != "" {
		assignee = &assignTo
	}
	return s.transition(ctx, id, domain.StatusTodo, assignee)
}

func (s *ticketService) MarkDoing(ctx context.Context, id int64, assignTo string) (*domain.Ticket, error) {
	assignee := assignTo
	if assignee == "" {
		assignee = s.actor
	}
	return s.transition(ctx, id, domain.StatusDoing, &assignee)
}

func (s *ticketService) transition(ctx context.Context, id int64, status domain.Status, assignee *string) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("ticket %d: %w", id, ErrTicketDone)
	}
	return s.tickets.TransitionAssignment(ctx, id, status, assignee, s.actor, s.clock())
}

func (s *ticketService) MarkDone(ctx context.Context, id int64, notes string) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.Status.CanTransitionTo(domain.StatusDone) {
		return nil, fmt.Errorf("ticket %d: %w", id, ErrTicketDone)
	}
	return s.tickets.Complete(ctx, id, notes, s.actor, s.clock())
}

func (s *ticketService) List(ctx context.Context, f repository.Filter) ([]*domain.Ticket, error) {
	return s.tickets.List(ctx, f)
}
