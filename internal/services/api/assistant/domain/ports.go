package domain

import (
	"context"

	knowledgedom "helpdesk/internal/services/api/knowledge/domain"
)

// ServicePort defines the assistant service contract
type ServicePort interface {
	Ask(ctx context.Context, in AskInput) (AskResult, error)
}

// Retriever is the slice of the knowledge base the assistant needs
type Retriever interface {
	Search(ctx context.Context, query string) ([]knowledgedom.Entry, error)
}
