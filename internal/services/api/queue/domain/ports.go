package domain

import "context"

// ServicePort defines the queue projector contract
type ServicePort interface {
	Board(ctx context.Context) ([]Entry, error)
	PositionFor(ctx context.Context, in PositionInput) (PositionResult, error)
	Refresh(ctx context.Context) error
}
