// Package domain holds DTOs for admin dashboard stats
package domain

// DayCount is tickets created on one day
type DayCount struct {
	Day   string `json:"day" example:"2025-09-03"`
	Count int    `json:"count" example:"7"`
}

// SubmissionStats aggregates submission outcomes from the analytics sink
type SubmissionStats struct {
	Accepted      int `json:"accepted"`
	Deduplicated  int `json:"deduplicated"`
	GuardRejected int `json:"guard_rejected"`
}

// Dashboard summarizes the current month of ticket activity
type Dashboard struct {
	Total          int        `json:"total"`
	Open           int        `json:"open"`
	InProgress     int        `json:"in_progress"`
	Resolved       int        `json:"resolved"`
	ResolutionRate float64    `json:"resolution_rate"`
	CreatedToday   int        `json:"created_today"`
	PerDay         []DayCount `json:"per_day"`

	// nil when the analytics sink is disabled
	Submissions *SubmissionStats `json:"submissions,omitempty"`
}
