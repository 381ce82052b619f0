// Package domain holds ticket types and contracts
package domain

import (
	"time"

	perr "helpdesk/internal/platform/errors"
)

// Status is the lifecycle state of a ticket
type Status string

// Ticket statuses
const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// ParseStatus validates a raw status string
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusResolved:
		return Status(s), nil
	}
	return "", perr.InvalidArgf("unknown ticket status %q", s)
}

// Open reports whether a ticket in this status sits in the live queue
func (s Status) Open() bool { return s != StatusResolved }

// CanTransition reports whether a status change is allowed
// resolved is terminal; open may move to in_progress or resolved,
// in_progress may only move to resolved
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusOpen:
		return to == StatusInProgress || to == StatusResolved
	case StatusInProgress:
		return to == StatusResolved
	}
	return false
}

// Ticket is a support request as stored
type Ticket struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
