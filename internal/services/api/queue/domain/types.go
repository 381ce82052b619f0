// Package domain holds queue projection types and contracts
package domain

import (
	"strings"
	"time"
)

// maskMarker replaces the hidden part of a local part
const maskMarker = "***"

// defaultDomain is used when an email has no domain part
const defaultDomain = "email.com"

// Entry is one anonymized row of the public queue board
type Entry struct {
	Position  int       `json:"position"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Position outcomes
const (
	OutcomeOK         = "ok"
	OutcomeQueueEmpty = "queue_empty"
	OutcomeNotFound   = "not_found"
)

// PositionResult reports where an email sits in the open queue
// Ahead holds the masked emails in front, so len(Ahead) == Position-1
type PositionResult struct {
	Outcome  string   `json:"outcome"`
	Position int      `json:"position,omitempty"`
	Ahead    []string `json:"ahead,omitempty"`
	Total    int      `json:"total"`
}

// MaskEmail anonymizes an address for public display
// local parts longer than 3 characters keep their first 3 and gain the
// marker; shorter locals stay unmasked; the domain is kept as is
func MaskEmail(email string) string {
	local, dom, found := strings.Cut(email, "@")
	if !found || dom == "" {
		dom = defaultDomain
	}
	if len(local) > 3 {
		local = local[:3] + maskMarker
	}
	return local + "@" + dom
}
