package domain

import "context"

// ServicePort defines the push registration contract
type ServicePort interface {
	Register(ctx context.Context, in RegisterInput) (Registration, error)
}
