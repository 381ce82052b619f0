package domain

import "time"

// SubmitInput is the payload for creating a ticket
type SubmitInput struct {
	Email       string `json:"email" validate:"required,email,max=254" example:"user@company.com"`
	Description string `json:"description" validate:"required,min=3,max=4000" example:"My laptop will not boot"`
}

// SubmitResult reports how a submission attempt ended
// Deduplicated is true when an equivalent very recent ticket was reused
// instead of inserting a new row
type SubmitResult struct {
	Ticket       Ticket `json:"ticket"`
	Position     int    `json:"position,omitempty"`
	Deduplicated bool   `json:"deduplicated"`
}

// ListInput filters the admin ticket listing
type ListInput struct {
	Status   string `json:"status,omitempty" validate:"omitempty,ticket_status" example:"open"`
	From     string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-09-01"`
	To       string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-09-30"`
	Page     int    `json:"page,omitempty" validate:"omitempty,min=1" example:"1"`
	PageSize int    `json:"page_size,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}

// UpdateStatusInput carries a status transition
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,ticket_status" example:"resolved"`
}

// ExportInput bounds the CSV export by creation date, inclusive
type ExportInput struct {
	From *time.Time
	To   *time.Time
}
