// Package service contains ticket workflows, including the submission
// orchestrator that sequences guard, recency check, insert, and cleanup
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"helpdesk/internal/modkit/repokit"
	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/platform/logger"
	str "helpdesk/internal/platform/strings"
	ptime "helpdesk/internal/platform/time"
	"helpdesk/internal/services/api/tickets/domain"
	"helpdesk/internal/services/api/tickets/repo"
	"helpdesk/internal/services/events"
)

// Submission timing windows
const (
	// how far back the recency check looks for an equal open ticket
	recencyWindow = 30 * time.Second

	// a match younger than this is treated as already created
	recencyDupWindow = 5 * time.Second

	// window the post insert cleanup scans for accidental extra rows
	cleanupWindow = 10 * time.Second
)

// Service defines the service contract for tickets
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	guard  *Guard
	queue  domain.QueuePort
	events *events.Recorder
}

// New creates a new tickets service
// queue and rec may be nil; submission then skips refresh and analytics
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], g *Guard, queue domain.QueuePort, rec *events.Recorder) *Svc {
	if db == nil {
		panic("tickets.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("tickets.Service requires a non nil Repo binder")
	}
	if g == nil {
		g = NewGuard()
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, guard: g, queue: queue, events: rec}
}

// Submit runs one orchestrated submission attempt
// every attempt ends in exactly one success or one error; success either
// created a single row or reused a very recent equal one
func (s *Svc) Submit(ctx context.Context, clientKey string, in domain.SubmitInput) (domain.SubmitResult, error) {
	email := str.NormalizeEmail(in.Email)
	description := strings.TrimSpace(in.Description)

	// surface validation before touching guard state or storage
	if email == "" || !strings.Contains(email, "@") {
		return domain.SubmitResult{}, perr.WithField(perr.Validationf("a valid email is required"), "email")
	}
	if description == "" {
		return domain.SubmitResult{}, perr.WithField(perr.Validationf("a description is required"), "description")
	}

	fp, reason := s.guard.TryBegin(clientKey, email, description)
	if reason != "" {
		s.record(ctx, events.Event{Kind: events.KindSubmission, ClientKey: clientKey, Outcome: "guard_rejected", Detail: string(reason)})
		return domain.SubmitResult{}, perr.TooManyf("submission rejected: %s", reason)
	}
	defer s.guard.End(clientKey)

	log := logger.C(ctx)

	// best effort recency check; a failed read must not block the insert
	matches, err := s.Repo.RecentOpenMatches(ctx, email, description, recencyWindow)
	if err != nil {
		log.Warn().Err(err).Msg("recency check failed, proceeding to insert")
		matches = nil
	}
	if t, ok := youngest(matches); ok && time.Since(t.CreatedAt) < recencyDupWindow {
		return s.finishDeduplicated(ctx, clientKey, toTicket(matches[0]))
	}

	row, err := s.Repo.Insert(ctx, email, description)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			// a constraint beat us to it; reuse whatever row exists
			if again, qerr := s.Repo.RecentOpenMatches(ctx, email, description, recencyWindow); qerr == nil && len(again) > 0 {
				return s.finishDeduplicated(ctx, clientKey, toTicket(again[0]))
			}
			s.record(ctx, events.Event{Kind: events.KindSubmission, ClientKey: clientKey, Outcome: "failed", Detail: "duplicate_without_row"})
			return domain.SubmitResult{}, perr.FromPostgres(err, "ticket insert")
		}
		s.record(ctx, events.Event{Kind: events.KindSubmission, ClientKey: clientKey, Outcome: "failed"})
		return domain.SubmitResult{}, perr.FromPostgres(err, "ticket insert")
	}
	ticket := toTicket(row)

	// cleanup: if the window now holds several equal rows keep the oldest
	if extras, qerr := s.Repo.RecentOpenMatches(ctx, email, description, cleanupWindow); qerr == nil && len(extras) > 1 {
		keep := extras[0]
		ids := make([]string, 0, len(extras)-1)
		for _, e := range extras[1:] {
			ids = append(ids, e.ID)
		}
		if derr := s.Repo.DeleteByIDs(ctx, ids); derr != nil {
			log.Warn().Err(derr).Int("extras", len(ids)).Msg("duplicate cleanup failed")
		} else if keep.ID != ticket.ID {
			ticket = toTicket(keep)
		}
	}

	pos := s.refreshQueue(ctx, email)
	s.record(ctx, events.Event{
		Kind:      events.KindSubmission,
		TicketID:  ticket.ID,
		ClientKey: clientKey,
		Outcome:   "accepted",
		Detail:    fmt.Sprintf("%016x", fp),
	})
	return domain.SubmitResult{Ticket: ticket, Position: pos}, nil
}

// List returns tickets for the admin view, newest first
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Ticket, int, error) {
	if in.Status != "" {
		if _, err := domain.ParseStatus(in.Status); err != nil {
			return nil, 0, err
		}
	}
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size <= 0 {
		size = 50
	}
	f := repo.ListFilter{Status: in.Status, Limit: size, Offset: (page - 1) * size}
	var err error
	if f.From, f.To, err = parseDayRange(in.From, in.To); err != nil {
		return nil, 0, err
	}
	rows, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "ticket list")
	}
	out := make([]domain.Ticket, 0, len(rows))
	for _, r := range rows {
		out = append(out, toTicket(r))
	}
	return out, total, nil
}

// UpdateStatus applies a status transition, enforcing that resolved is terminal
func (s *Svc) UpdateStatus(ctx context.Context, id string, in domain.UpdateStatusInput) (domain.Ticket, error) {
	next, err := domain.ParseStatus(in.Status)
	if err != nil {
		return domain.Ticket{}, err
	}
	cur, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Ticket{}, perr.NotFoundf("ticket %s not found", id)
		}
		return domain.Ticket{}, perr.FromPostgres(err, "ticket lookup")
	}
	if !domain.Status(cur.Status).CanTransition(next) {
		return domain.Ticket{}, perr.Conflictf("cannot move ticket from %s to %s", cur.Status, next)
	}
	row, err := s.Repo.UpdateStatus(ctx, id, string(next))
	if err != nil {
		return domain.Ticket{}, perr.FromPostgres(err, "ticket status update")
	}
	// a resolve drops the row out of the public queue on the next refresh
	if s.queue != nil {
		if rerr := s.queue.Refresh(ctx); rerr != nil {
			logger.C(ctx).Warn().Err(rerr).Msg("queue refresh after status change failed")
		}
	}
	return toTicket(row), nil
}

func (s *Svc) finishDeduplicated(ctx context.Context, clientKey string, t domain.Ticket) (domain.SubmitResult, error) {
	pos := s.refreshQueue(ctx, t.Email)
	s.record(ctx, events.Event{Kind: events.KindSubmission, TicketID: t.ID, ClientKey: clientKey, Outcome: "deduplicated"})
	return domain.SubmitResult{Ticket: t, Position: pos, Deduplicated: true}, nil
}

// refreshQueue refreshes the projector and reports the submitter position
// both calls are best effort; the submission already succeeded
func (s *Svc) refreshQueue(ctx context.Context, email string) int {
	if s.queue == nil {
		return 0
	}
	if err := s.queue.Refresh(ctx); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("queue refresh failed")
		return 0
	}
	pos, err := s.queue.Position(ctx, email)
	if err != nil {
		return 0
	}
	return pos
}

func (s *Svc) record(ctx context.Context, ev events.Event) {
	if s.events != nil {
		s.events.Record(ctx, ev)
	}
}

// youngest returns the most recent match, relying on ascending order
func youngest(rows []repo.TicketRow) (repo.TicketRow, bool) {
	if len(rows) == 0 {
		return repo.TicketRow{}, false
	}
	return rows[len(rows)-1], true
}

func toTicket(r repo.TicketRow) domain.Ticket {
	return domain.Ticket{
		ID:          r.ID,
		Email:       r.Email,
		Description: r.Description,
		Status:      domain.Status(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// parseDayRange converts inclusive yyyy-mm-dd bounds into timestamps
func parseDayRange(from, to string) (*time.Time, *time.Time, error) {
	var lo, hi *time.Time
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, nil, perr.WithField(perr.Validationf("from must be yyyy-mm-dd"), "from")
		}
		lo = &t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, nil, perr.WithField(perr.Validationf("to must be yyyy-mm-dd"), "to")
		}
		_, end := ptime.DayBounds(t)
		hi = &end
	}
	return lo, hi, nil
}
