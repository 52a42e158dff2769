package formatter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akettner/jire/internal/domain"
)

func sampleTicket() *domain.Ticket {
	assignee := "bob"
	updatedBy := "bob"
	created := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	return &domain.Ticket{
		ID:          3,
		Name:        "Fix login bug",
		Description: "users cannot log in",
		Project:     "web",
		Status:      domain.StatusDoing,
		AssignedTo:  &assignee,
		Notes:       "",
		CreatedBy:   "alice",
		UpdatedBy:   &updatedBy,
		CreatedAt:   created,
		UpdatedAt:   &updated,
	}
}

func TestFormatTicketsJSON_FieldNamesAndValues(t *testing.T) {
	out, err := FormatTicketsJSON([]*domain.Ticket{sampleTicket()})
	require.NoError(t, err)

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)

	assert.Equal(t, map[string]string{
		"rowid":       "3",
		"name":        "Fix login bug",
		"description": "users cannot log in",
		"project":     "web",
		"status":      "DOING",
		"assigned_to": "bob",
		"notes":       "",
		"created_by":  "alice",
		"updated_by":  "bob",
		"created_at":  "2026-08-25T10:00:00Z",
		"updated_at":  "2026-08-25T11:00:00Z",
	}, decoded[0])
}

func TestFormatTicketsJSON_AbsentOptionalsAreEmptyStrings(t *testing.T) {
	ticket := sampleTicket()
	ticket.AssignedTo = nil
	ticket.UpdatedBy = nil
	ticket.UpdatedAt = nil

	out, err := FormatTicketsJSON([]*domain.Ticket{ticket})
	require.NoError(t, err)

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "", decoded[0]["assigned_to"])
	assert.Equal(t, "", decoded[0]["updated_by"])
	assert.Equal(t, "", decoded[0]["updated_at"])
}

func TestFormatTicketsJSON_EmptyListIsEmptyArray(t *testing.T) {
	out, err := FormatTicketsJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestFormatTicketsTable_ContainsValues(t *testing.T) {
	out := FormatTicketsTable([]*domain.Ticket{sampleTicket()})

	assert.Contains(t, out, "Tickets")
	assert.Contains(t, out, "rowid")
	assert.Contains(t, out, "assigned_to")
	assert.Contains(t, out, "Fix login bug")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "2026-08-25T10:00:00Z")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable("", []string{"a", "long_header"}, [][]string{
		{"x", "y"},
		{"wider-cell", "z"},
	})
	lines := []string{}
	for _, l := range splitLines(out) {
		if l != "" {
			lines = append(lines, l)
		}
	}
	// Header, separator, two data rows.
	require.Len(t, lines, 4)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
