// Package service implements the admin session gate
//
// This is a single shared credential pair compared against configuration, not
// real access control: no users, no roles, no lockout. It only keeps the
// management endpoints off the public surface.
package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"

	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/platform/session"
	"helpdesk/internal/services/api/admin/domain"
)

// Config holds the static credentials and session lifetime
type Config struct {
	Username   string
	Password   string
	SessionTTL time.Duration
}

// Service defines the service contract for admin sessions
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	sessions *session.RedisStore
	cfg      Config
}

// New creates a new admin session service
func New(sessions *session.RedisStore, cfg Config) *Svc {
	if sessions == nil {
		panic("admin.Service requires a non nil session store")
	}
	if cfg.Username == "" || cfg.Password == "" {
		panic("admin.Service requires configured credentials")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	return &Svc{sessions: sessions, cfg: cfg}
}

// Login checks the credential pair in constant time and mints a session token
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.LoginResult, error) {
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(s.cfg.Username))
	passOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(s.cfg.Password))
	if userOK&passOK != 1 {
		return domain.LoginResult{}, perr.Unauthorizedf("invalid credentials")
	}

	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, in.Username); err != nil {
		return domain.LoginResult{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "session store unavailable")
	}
	return domain.LoginResult{
		Token:     token,
		Username:  in.Username,
		ExpiresAt: time.Now().UTC().Add(s.cfg.SessionTTL),
	}, nil
}

// Logout revokes a session token; unknown tokens are a no-op
func (s *Svc) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, token)
}

// Verify resolves a token to its admin username
func (s *Svc) Verify(ctx context.Context, token string) (string, error) {
	return s.sessions.Lookup(ctx, token)
}
