package domain

import "fmt"

type Status string

const (
	StatusTodo  Status = "TODO"
	StatusDoing Status = "DOING"
	StatusDone  Status = "DONE"
)

// ValidStatuses is the canonical set of accepted status strings.
var ValidStatuses = map[string]bool{
	"TODO": true, "DOING": true, "DONE": true,
}

// ParseStatus converts a raw status string into a Status.
func ParseStatus(s string) (Status, error) {
	if !ValidStatuses[s] {
		return "", fmt.Errorf("invalid status %q (expected TODO, DOING or DONE)", s)
	}
	return Status(s), nil
}

// CanTransitionTo reports whether a ticket in status s may move to next.
// TODO and DOING swap freely; either may complete to DONE; DONE is terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusTodo, StatusDoing:
		return next == StatusTodo || next == StatusDoing || next == StatusDone
	default:
		return false
	}
}
