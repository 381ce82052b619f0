// Package service contains push token workflows
package service

import (
	"context"
	"strings"

	"helpdesk/internal/modkit/repokit"
	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/services/api/push/domain"
	"helpdesk/internal/services/api/push/repo"
)

// Service defines the service contract for push registration
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new push service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("push.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("push.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Register upserts a device token; repeated registrations refresh metadata
func (s *Svc) Register(ctx context.Context, in domain.RegisterInput) (domain.Registration, error) {
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return domain.Registration{}, perr.WithField(perr.Validationf("a token is required"), "token")
	}
	row, err := s.Repo.Upsert(ctx, token, strings.TrimSpace(in.Platform), strings.TrimSpace(in.UserAgent))
	if err != nil {
		return domain.Registration{}, perr.FromPostgres(err, "push token upsert")
	}
	return domain.Registration{
		Token:     row.Token,
		Platform:  row.Platform,
		UserAgent: row.UserAgent,
		CreatedAt: row.CreatedAt,
		LastSeen:  row.LastSeen,
	}, nil
}
