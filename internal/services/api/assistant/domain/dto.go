// Package domain holds DTOs for the assistant http and service contracts
package domain

// AskInput is a user problem statement for the assistant
type AskInput struct {
	Description string `json:"description" validate:"required,min=3,max=2000" example:"My VPN keeps disconnecting"`
}

// AskResult is the assistant reply
// RequiresTicket is a substring heuristic over the reply text, not a model
// level classification
type AskResult struct {
	Response       string `json:"response"`
	RequiresTicket bool   `json:"requires_ticket"`
	SourcesUsed    int    `json:"sources_used"`
}
