// Package repo provides postgres access for the notifier worker
package repo

import (
	"context"
	"time"

	"helpdesk/internal/modkit/repokit"
	"helpdesk/internal/platform/store"
)

// PendingTicket is a ticket that has not been announced yet
type PendingTicket struct {
	ID          string
	Email       string
	Description string
	CreatedAt   time.Time
}

// Repo defines the persistence surface used by the notifier service
type Repo interface {
	// LeasePending claims up to limit unannounced tickets ordered oldest first
	// claimed rows are skipped by concurrent workers until the tx commits
	LeasePending(ctx context.Context, limit int) ([]PendingTicket, error)

	// MarkNotified stamps a ticket as announced
	MarkNotified(ctx context.Context, id string) error

	// ListTokens returns every registered push token
	ListTokens(ctx context.Context) ([]string, error)

	// DeleteToken drops a token the gateway reported as dead
	DeleteToken(ctx context.Context, token string) error
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) LeasePending(ctx context.Context, limit int) ([]PendingTicket, error) {
	const sql = `
select id::text, email, description, created_at
from tickets
where notified_at is null
order by created_at asc, id asc
limit $1
for update skip locked
`
	return store.Many(ctx, r.q, func(row repokit.Row) (PendingTicket, error) {
		var t PendingTicket
		err := row.Scan(&t.ID, &t.Email, &t.Description, &t.CreatedAt)
		return t, err
	}, sql, limit)
}

func (r *queries) MarkNotified(ctx context.Context, id string) error {
	const sql = `update tickets set notified_at = now() where id = $1`
	return store.ExecOne(ctx, r.q, sql, id)
}

func (r *queries) ListTokens(ctx context.Context) ([]string, error) {
	const sql = `select token from push_tokens order by last_seen desc`
	return store.Many(ctx, r.q, func(row repokit.Row) (string, error) {
		var t string
		err := row.Scan(&t)
		return t, err
	}, sql)
}

func (r *queries) DeleteToken(ctx context.Context, token string) error {
	const sql = `delete from push_tokens where token = $1`
	_, err := store.Exec(ctx, r.q, sql, token)
	return err
}
