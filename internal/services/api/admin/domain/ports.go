package domain

import "context"

// ServicePort defines the admin session contract
type ServicePort interface {
	Login(ctx context.Context, in LoginInput) (LoginResult, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (string, error)
}
