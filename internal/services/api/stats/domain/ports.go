package domain

import "context"

// ServicePort defines the stats service contract
type ServicePort interface {
	Dashboard(ctx context.Context) (Dashboard, error)
}
