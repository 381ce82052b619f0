// Package service implements the push notifier worker
package service

import (
	"context"
	"time"

	"helpdesk/internal/adapters/pushgw"
	"helpdesk/internal/modkit"
	"helpdesk/internal/modkit/repokit"
	"helpdesk/internal/services/events"
	nrepo "helpdesk/internal/services/notifier/repo"
)

// Config controls the worker
type Config struct {
	Interval    time.Duration
	Batch       int
	Concurrency int
}

// Svc implements the notifier worker
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[nrepo.Repo]
	repo   nrepo.Repo

	push   *pushgw.Client
	events *events.Recorder
	cfg    Config
	deps   modkit.Deps
}

// New constructs the service
func New(deps modkit.Deps, cfg Config, push *pushgw.Client) *Svc {
	if deps.PG == nil {
		panic("notifier service requires a database")
	}
	if push == nil {
		panic("notifier service requires a push client")
	}
	b := nrepo.NewPG()
	return &Svc{
		db:     deps.PG,
		binder: b,
		repo:   b.Bind(deps.PG),
		push:   push,
		events: events.NewRecorder(deps.CH, deps.Log),
		cfg:    cfg,
		deps:   deps,
	}
}

// claim leases a batch of unannounced tickets and stamps them inside one tx
// stamping before sending keeps delivery at most once; a crashed send is not retried
func (s *Svc) claim(ctx context.Context) ([]nrepo.PendingTicket, error) {
	var out []nrepo.PendingTicket
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		batch, err := r.LeasePending(ctx, max(1, s.cfg.Batch))
		if err != nil {
			return err
		}
		for i := range batch {
			if err := r.MarkNotified(ctx, batch[i].ID); err != nil {
				return err
			}
		}
		out = batch
		return nil
	})
	return out, err
}
