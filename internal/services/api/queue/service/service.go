// Package service implements the queue projector
// it keeps a cached snapshot of the open ticket queue, refreshed by a
// background poll and after every successful submission; position lookups are
// pure functions over the snapshot
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"helpdesk/internal/modkit/repokit"
	"helpdesk/internal/platform/logger"
	str "helpdesk/internal/platform/strings"
	"helpdesk/internal/services/api/queue/domain"
	"helpdesk/internal/services/api/queue/repo"
)

// DefaultRefreshInterval is the background poll cadence
const DefaultRefreshInterval = 15 * time.Second

// snapshots older than this are re-fetched on read
const snapshotMaxAge = time.Minute

// Service defines the service contract for the queue
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	mu        sync.RWMutex
	snapshot  []repo.OpenTicket
	fetchedAt time.Time
}

// New creates a new queue service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("queue.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("queue.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Refresh re-fetches the open queue and replaces the snapshot
// concurrent refreshes race harmlessly; last write wins over idempotent reads
func (s *Svc) Refresh(ctx context.Context) error {
	rows, err := s.Repo.ListOpenAsc(ctx)
	if err != nil {
		return err
	}
	rows = dedupeByID(rows)

	s.mu.Lock()
	s.snapshot = rows
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// Run polls the queue on a fixed interval until ctx is done
func (s *Svc) Run(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		every = DefaultRefreshInterval
	}
	log := logger.Named("queue-poller")
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("queue refresh failed")
			}
		}
	}
}

// Board returns the anonymized public queue
func (s *Svc) Board(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Entry, 0, len(rows))
	for i, r := range rows {
		out = append(out, domain.Entry{
			Position:  i + 1,
			Email:     domain.MaskEmail(r.Email),
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

// PositionFor reports where an email sits in the open queue
// an empty queue and a missing email are distinct outcomes
func (s *Svc) PositionFor(ctx context.Context, in domain.PositionInput) (domain.PositionResult, error) {
	// the endpoint answers against fresh state, not the poll cadence
	if err := s.Refresh(ctx); err != nil {
		return domain.PositionResult{}, err
	}
	rows := s.view()

	if len(rows) == 0 {
		return domain.PositionResult{Outcome: domain.OutcomeQueueEmpty}, nil
	}
	email := str.NormalizeEmail(in.Email)
	for i, r := range rows {
		if strings.EqualFold(r.Email, email) {
			ahead := make([]string, 0, i)
			for _, a := range rows[:i] {
				ahead = append(ahead, domain.MaskEmail(a.Email))
			}
			return domain.PositionResult{
				Outcome:  domain.OutcomeOK,
				Position: i + 1,
				Ahead:    ahead,
				Total:    len(rows),
			}, nil
		}
	}
	return domain.PositionResult{Outcome: domain.OutcomeNotFound, Total: len(rows)}, nil
}

// Position is the narrow lookup used by the submission flow
// returns 0 when the email is not in the snapshot
func (s *Svc) Position(ctx context.Context, email string) (int, error) {
	rows, err := s.current(ctx)
	if err != nil {
		return 0, err
	}
	email = str.NormalizeEmail(email)
	for i, r := range rows {
		if strings.EqualFold(r.Email, email) {
			return i + 1, nil
		}
	}
	return 0, nil
}

// current returns the snapshot, refreshing first when it is stale
func (s *Svc) current(ctx context.Context) ([]repo.OpenTicket, error) {
	s.mu.RLock()
	age := time.Since(s.fetchedAt)
	rows := s.snapshot
	s.mu.RUnlock()

	if age > snapshotMaxAge {
		if err := s.Refresh(ctx); err != nil {
			// serve the stale view if we have one
			if rows == nil {
				return nil, err
			}
			logger.C(ctx).Warn().Err(err).Msg("queue refresh failed, serving stale snapshot")
			return rows, nil
		}
		rows = s.view()
	}
	return rows, nil
}

func (s *Svc) view() []repo.OpenTicket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// dedupeByID drops repeated ids, keeping the first occurrence
func dedupeByID(rows []repo.OpenTicket) []repo.OpenTicket {
	seen := make(map[string]struct{}, len(rows))
	out := rows[:0]
	for _, r := range rows {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
