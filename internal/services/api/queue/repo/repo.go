// Package repo provides postgres access for the queue projection
package repo

import (
	"context"
	"time"

	"helpdesk/internal/modkit/repokit"
	"helpdesk/internal/platform/store"
)

// OpenTicket is the slice of a ticket the projection needs
type OpenTicket struct {
	ID        string
	Email     string
	Status    string
	CreatedAt time.Time
}

// Repo defines the repository contract for the queue projection
type Repo interface {
	// ListOpenAsc returns all non resolved tickets, oldest first
	ListOpenAsc(ctx context.Context) ([]OpenTicket, error)
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

func (r *queries) ListOpenAsc(ctx context.Context) ([]OpenTicket, error) {
	const sql = `
select id::text, email, status::text, created_at
from tickets
where status <> 'resolved'
order by created_at asc, id asc
`
	return store.Many(ctx, r.q, func(row repokit.Row) (OpenTicket, error) {
		var t OpenTicket
		err := row.Scan(&t.ID, &t.Email, &t.Status, &t.CreatedAt)
		return t, err
	}, sql)
}
