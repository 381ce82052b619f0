package domain

import "context"

// ServicePort defines the knowledge service contract
type ServicePort interface {
	Create(ctx context.Context, in CreateInput) (Entry, error)
	Update(ctx context.Context, id string, in UpdateInput) (Entry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Entry, error)
	Search(ctx context.Context, query string) ([]Entry, error)
}
