// Package domain holds knowledge base types and contracts
package domain

import "time"

// Entry is one curated question and answer pair
// Keywords widen retrieval matching; Priority orders curated entries above
// organically popular ones; UsageCount tracks retrieval hits
type Entry struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Category   string    `json:"category"`
	Keywords   []string  `json:"keywords"`
	UsageCount int       `json:"usage_count"`
	Priority   int       `json:"priority"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
