package formatter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/akettner/jire/internal/domain"
)

// ticketRecord is the wire/rendering shape of a ticket: every field a
// string, absent optionals as "", timestamps ISO-8601.
type ticketRecord struct {
	RowID       string `json:"rowid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Project     string `json:"project"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assigned_to"`
	Notes       string `json:"notes"`
	CreatedBy   string `json:"created_by"`
	UpdatedBy   string `json:"updated_by"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toRecord(t *domain.Ticket) ticketRecord {
	r := ticketRecord{
		RowID:       fmt.Sprintf("%d", t.ID),
		Name:        t.Name,
		Description: t.Description,
		Project:     t.Project,
		Status:      string(t.Status),
		Notes:       t.Notes,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.AssignedTo != nil {
		r.AssignedTo = *t.AssignedTo
	}
	if t.UpdatedBy != nil {
		r.UpdatedBy = *t.UpdatedBy
	}
	if t.UpdatedAt != nil {
		r.UpdatedAt = t.UpdatedAt.Format(time.RFC3339)
	}
	return r
}

// FormatTicketsJSON renders tickets as an indented JSON array.
func FormatTicketsJSON(tickets []*domain.Ticket) (string, error) {
	records := make([]ticketRecord, 0, len(tickets))
	for _, t := range tickets {
		records = append(records, toRecord(t))
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling tickets: %w", err)
	}
	return string(data), nil
}

var ticketHeaders = []string{
	"rowid", "name", "description", "project", "status",
	"assigned_to", "notes", "created_by", "updated_by",
	"created_at", "updated_at",
}

// FormatTicketsTable renders tickets as the titled console table.
func FormatTicketsTable(tickets []*domain.Ticket) string {
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		r := toRecord(t)
		rows = append(rows, []string{
			r.RowID, r.Name, r.Description, r.Project, statusCell(t.Status),
			r.AssignedTo, r.Notes, r.CreatedBy, r.UpdatedBy,
			r.CreatedAt, r.UpdatedAt,
		})
	}
	return RenderTable("Tickets", ticketHeaders, rows)
}

func statusCell(s domain.Status) string {
	switch s {
	case domain.StatusDone:
		return StyleGreen.Render(string(s))
	case domain.StatusDoing:
		return StyleYellow.Render(string(s))
	default:
		return string(s)
	}
}
