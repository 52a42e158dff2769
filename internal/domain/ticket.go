package domain

import "time"

// Ticket is a snapshot of one persisted ticket row. The store is
// authoritative: every mutation round-trips through it and returns a
// fresh snapshot.
type Ticket struct {
	ID          int64
	Name        string
	Description string
	Project     string
	Status      Status
	AssignedTo  *string
	Notes       string
	CreatedBy   string
	UpdatedBy   *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
