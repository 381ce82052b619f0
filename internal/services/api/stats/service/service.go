// Package service assembles the admin dashboard
package service

import (
	"context"

	"helpdesk/internal/modkit/repokit"
	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/platform/logger"
	"helpdesk/internal/platform/store"
	"helpdesk/internal/services/api/stats/domain"
	"helpdesk/internal/services/api/stats/repo"
	"helpdesk/internal/services/events"
)

// Service defines the service contract for stats
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	// optional analytics sink for submission outcome counts
	ch store.Clickhouse
}

// New creates a new stats service; ch may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], ch store.Clickhouse) *Svc {
	if db == nil {
		panic("stats.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("stats.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, ch: ch}
}

// Dashboard returns the month window ticket summary
func (s *Svc) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	totals, err := s.Repo.MonthTotals(ctx)
	if err != nil {
		return domain.Dashboard{}, perr.FromPostgres(err, "stats totals")
	}
	days, err := s.Repo.PerDay(ctx, 30)
	if err != nil {
		return domain.Dashboard{}, perr.FromPostgres(err, "stats per day")
	}

	out := domain.Dashboard{
		Total:        totals.Total,
		Open:         totals.Open,
		InProgress:   totals.InProgress,
		Resolved:     totals.Resolved,
		CreatedToday: totals.CreatedToday,
		PerDay:       make([]domain.DayCount, 0, len(days)),
	}
	if totals.Total > 0 {
		out.ResolutionRate = float64(totals.Resolved) / float64(totals.Total)
	}
	for _, d := range days {
		out.PerDay = append(out.PerDay, domain.DayCount{Day: d.Day, Count: d.Count})
	}

	// best effort; the dashboard stays useful without the sink
	if sub, ok := s.submissionOutcomes(ctx); ok {
		out.Submissions = &sub
	}
	return out, nil
}

func (s *Svc) submissionOutcomes(ctx context.Context) (domain.SubmissionStats, bool) {
	if s.ch == nil {
		return domain.SubmissionStats{}, false
	}
	rows, err := s.ch.Query(ctx, `
select outcome, count() as n
from `+events.Table+`
where kind = 'submission'
group by outcome
`)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("submission outcome query failed")
		return domain.SubmissionStats{}, false
	}
	defer rows.Close()

	var out domain.SubmissionStats
	for rows.Next() {
		var outcome string
		var n uint64
		if err := rows.Scan(&outcome, &n); err != nil {
			logger.C(ctx).Warn().Err(err).Msg("submission outcome scan failed")
			return domain.SubmissionStats{}, false
		}
		switch outcome {
		case "accepted":
			out.Accepted = int(n)
		case "deduplicated":
			out.Deduplicated = int(n)
		case "guard_rejected":
			out.GuardRejected = int(n)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.SubmissionStats{}, false
	}
	return out, true
}
