// Package repo provides postgres access for tickets
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"helpdesk/internal/modkit/repokit"
	"helpdesk/internal/platform/store"
)

// TicketRow is a ticket row from the database
type TicketRow struct {
	ID          string
	Email       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListFilter narrows the admin listing
type ListFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Repo defines the repository contract for tickets
type Repo interface {
	Insert(ctx context.Context, email, description string) (TicketRow, error)
	GetByID(ctx context.Context, id string) (TicketRow, error)
	RecentOpenMatches(ctx context.Context, email, description string, window time.Duration) ([]TicketRow, error)
	DeleteByIDs(ctx context.Context, ids []string) error
	UpdateStatus(ctx context.Context, id, status string) (TicketRow, error)
	List(ctx context.Context, f ListFilter) ([]TicketRow, int, error)
	ListForExport(ctx context.Context, from, to *time.Time) ([]TicketRow, error)
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

const ticketCols = `id::text, email, description, status::text, created_at, updated_at`

func scanTicket(r repokit.Row) (TicketRow, error) {
	var t TicketRow
	err := r.Scan(&t.ID, &t.Email, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *queries) Insert(ctx context.Context, email, description string) (TicketRow, error) {
	const sql = `
insert into tickets (id, email, description, status)
values ($1, $2, $3, 'open')
returning ` + ticketCols
	return store.One(ctx, r.q, scanTicket, sql, uuid.NewString(), email, description)
}

func (r *queries) GetByID(ctx context.Context, id string) (TicketRow, error) {
	const sql = `select ` + ticketCols + ` from tickets where id = $1`
	return store.One(ctx, r.q, scanTicket, sql, id)
}

// RecentOpenMatches returns non resolved tickets with exactly matching email and
// description created within the trailing window, oldest first
func (r *queries) RecentOpenMatches(ctx context.Context, email, description string, window time.Duration) ([]TicketRow, error) {
	const sql = `
select ` + ticketCols + `
from tickets
where email = $1
and description = $2
and status <> 'resolved'
and created_at >= now() - make_interval(secs => $3)
order by created_at asc, id asc
`
	return store.Many(ctx, r.q, scanTicket, sql, email, description, window.Seconds())
}

func (r *queries) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	const sql = `delete from tickets where id = any($1::uuid[])`
	_, err := r.q.Exec(ctx, sql, ids)
	return err
}

func (r *queries) UpdateStatus(ctx context.Context, id, status string) (TicketRow, error) {
	const sql = `
update tickets
set status = $2, updated_at = now()
where id = $1
returning ` + ticketCols
	return store.One(ctx, r.q, scanTicket, sql, id, status)
}

func (r *queries) List(ctx context.Context, f ListFilter) ([]TicketRow, int, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	const where = `
where ($1 = '' or status::text = $1)
and ($2::timestamptz is null or created_at >= $2)
and ($3::timestamptz is null or created_at < $3)
`
	total, err := store.Scalar[int](ctx, r.q, `select count(*) from tickets `+where, f.Status, f.From, f.To)
	if err != nil {
		return nil, 0, err
	}
	rows, err := store.Many(ctx, r.q, scanTicket, `
select `+ticketCols+`
from tickets `+where+`
order by created_at desc
limit $4 offset $5
`, f.Status, f.From, f.To, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *queries) ListForExport(ctx context.Context, from, to *time.Time) ([]TicketRow, error) {
	const sql = `
select ` + ticketCols + `
from tickets
where ($1::timestamptz is null or created_at >= $1)
and ($2::timestamptz is null or created_at < $2)
order by created_at desc
`
	return store.Many(ctx, r.q, scanTicket, sql, from, to)
}
