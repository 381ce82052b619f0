// Package repo provides postgres access for dashboard stats
package repo

import (
	"context"

	"helpdesk/internal/modkit/repokit"
	"helpdesk/internal/platform/store"
)

// Totals is the month window status breakdown
type Totals struct {
	Total        int
	Open         int
	InProgress   int
	Resolved     int
	CreatedToday int
}

// DayRow is tickets created on one day
type DayRow struct {
	Day   string
	Count int
}

// Repo defines the repository contract for stats
type Repo interface {
	MonthTotals(ctx context.Context) (Totals, error)
	PerDay(ctx context.Context, days int) ([]DayRow, error)
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

func (r *queries) MonthTotals(ctx context.Context) (Totals, error) {
	const sql = `
select
count(*) as total,
count(*) filter (where status = 'open') as open,
count(*) filter (where status = 'in_progress') as in_progress,
count(*) filter (where status = 'resolved') as resolved,
count(*) filter (where created_at >= date_trunc('day', now())) as created_today
from tickets
where created_at >= date_trunc('month', now())
`
	return store.One(ctx, r.q, func(row repokit.Row) (Totals, error) {
		var t Totals
		err := row.Scan(&t.Total, &t.Open, &t.InProgress, &t.Resolved, &t.CreatedToday)
		return t, err
	}, sql)
}

func (r *queries) PerDay(ctx context.Context, days int) ([]DayRow, error) {
	if days <= 0 || days > 90 {
		days = 30
	}
	const sql = `
select to_char(date_trunc('day', created_at), 'YYYY-MM-DD') as day, count(*)
from tickets
where created_at >= date_trunc('day', now()) - make_interval(days => $1)
group by 1
order by 1 asc
`
	return store.Many(ctx, r.q, func(row repokit.Row) (DayRow, error) {
		var d DayRow
		err := row.Scan(&d.Day, &d.Count)
		return d, err
	}, sql, days)
}
