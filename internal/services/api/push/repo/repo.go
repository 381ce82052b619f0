// Package repo provides postgres access for push tokens
package repo

import (
	"context"
	"time"

	"helpdesk/internal/modkit/repokit"
	"helpdesk/internal/platform/store"
)

// TokenRow is a push token row from the database
type TokenRow struct {
	Token     string
	Platform  string
	UserAgent string
	CreatedAt time.Time
	LastSeen  time.Time
}

// Repo defines the repository contract for push tokens
type Repo interface {
	// Upsert registers a token, refreshing metadata and last_seen on conflict
	Upsert(ctx context.Context, token, platform, userAgent string) (TokenRow, error)
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

func (r *queries) Upsert(ctx context.Context, token, platform, userAgent string) (TokenRow, error) {
	const sql = `
insert into push_tokens (token, platform, user_agent)
values ($1, $2, $3)
on conflict (token) do update
set platform = excluded.platform,
user_agent = excluded.user_agent,
last_seen = now()
returning token, platform, user_agent, created_at, last_seen
`
	return store.One(ctx, r.q, func(row repokit.Row) (TokenRow, error) {
		var t TokenRow
		err := row.Scan(&t.Token, &t.Platform, &t.UserAgent, &t.CreatedAt, &t.LastSeen)
		return t, err
	}, sql, token, platform, userAgent)
}
