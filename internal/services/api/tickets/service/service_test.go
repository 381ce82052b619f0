package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/services/api/tickets/domain"
	"helpdesk/internal/services/api/tickets/repo"
)

// fakeRepo is an in memory stand in for the postgres repo
type fakeRepo struct {
	rows []repo.TicketRow

	insertErr error
	recentErr error
	deleted   []string
	now       time.Time
}

func (f *fakeRepo) Insert(_ context.Context, email, description string) (repo.TicketRow, error) {
	if f.insertErr != nil {
		return repo.TicketRow{}, f.insertErr
	}
	r := repo.TicketRow{
		ID:          "t-" + time.Now().Format("150405.000000000"),
		Email:       email,
		Description: description,
		Status:      "open",
		CreatedAt:   f.clock(),
		UpdatedAt:   f.clock(),
	}
	f.rows = append(f.rows, r)
	return r, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (repo.TicketRow, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return repo.TicketRow{}, perr.ErrNotFound
}

func (f *fakeRepo) RecentOpenMatches(_ context.Context, email, description string, window time.Duration) ([]repo.TicketRow, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	var out []repo.TicketRow
	for _, r := range f.rows {
		if r.Email == email && r.Description == description && r.Status != "resolved" &&
			f.clock().Sub(r.CreatedAt) <= window {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteByIDs(_ context.Context, ids []string) error {
	f.deleted = append(f.deleted, ids...)
	kept := f.rows[:0]
	for _, r := range f.rows {
		drop := false
		for _, id := range ids {
			if r.ID == id {
				drop = true
			}
		}
		if !drop {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) (repo.TicketRow, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			f.rows[i].UpdatedAt = f.clock()
			return f.rows[i], nil
		}
	}
	return repo.TicketRow{}, perr.ErrNotFound
}

func (f *fakeRepo) List(_ context.Context, _ repo.ListFilter) ([]repo.TicketRow, int, error) {
	return f.rows, len(f.rows), nil
}

func (f *fakeRepo) ListForExport(_ context.Context, _, _ *time.Time) ([]repo.TicketRow, error) {
	return f.rows, nil
}

func (f *fakeRepo) clock() time.Time {
	if f.now.IsZero() {
		return time.Now()
	}
	return f.now
}

// fakeQueue counts refreshes and reports a fixed position
type fakeQueue struct {
	refreshes int
	pos       int
	err       error
}

func (q *fakeQueue) Refresh(context.Context) error { q.refreshes++; return q.err }
func (q *fakeQueue) Position(context.Context, string) (int, error) {
	return q.pos, q.err
}

func testSvc(f *fakeRepo, q domain.QueuePort) *Svc {
	g := NewGuard()
	g.after = func(_ time.Duration, fn func()) { fn() }
	return &Svc{Repo: f, guard: g, queue: q}
}

func TestSubmitCreatesTicket(t *testing.T) {
	f := &fakeRepo{}
	q := &fakeQueue{pos: 3}
	s := testSvc(f, q)

	res, err := s.Submit(context.Background(), "c1", domain.SubmitInput{
		Email:       "  User@Example.com ",
		Description: " my monitor died ",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Deduplicated {
		t.Fatalf("fresh submission marked deduplicated")
	}
	if res.Ticket.Email != "user@example.com" {
		t.Fatalf("email not normalized: %q", res.Ticket.Email)
	}
	if res.Ticket.Description != "my monitor died" {
		t.Fatalf("description not trimmed: %q", res.Ticket.Description)
	}
	if res.Ticket.Status != domain.StatusOpen {
		t.Fatalf("status = %q, want open", res.Ticket.Status)
	}
	if res.Position != 3 {
		t.Fatalf("position = %d, want 3", res.Position)
	}
	if q.refreshes != 1 {
		t.Fatalf("queue refreshes = %d, want 1", q.refreshes)
	}
}

func TestSubmitValidation(t *testing.T) {
	s := testSvc(&fakeRepo{}, nil)

	cases := []struct {
		name string
		in   domain.SubmitInput
	}{
		{"empty email", domain.SubmitInput{Email: "  ", Description: "help"}},
		{"no at sign", domain.SubmitInput{Email: "nope", Description: "help"}},
		{"empty description", domain.SubmitInput{Email: "a@b.com", Description: "   "}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := s.Submit(context.Background(), "c1", c.in)
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestSubmitGuardRejects(t *testing.T) {
	f := &fakeRepo{}
	s := testSvc(f, nil)
	// keep submitting set across the first call
	s.guard.after = func(time.Duration, func()) {}

	if _, err := s.Submit(context.Background(), "c1", domain.SubmitInput{Email: "a@b.com", Description: "first"}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := s.Submit(context.Background(), "c1", domain.SubmitInput{Email: "a@b.com", Description: "second"})
	if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
		t.Fatalf("want too many requests, got %v", err)
	}
	if len(f.rows) != 1 {
		t.Fatalf("rejected attempt reached storage, rows = %d", len(f.rows))
	}
}

func TestSubmitReusesVeryRecentMatch(t *testing.T) {
	now := time.Now()
	f := &fakeRepo{now: now}
	f.rows = append(f.rows, repo.TicketRow{
		ID: "existing", Email: "a@b.com", Description: "vpn broken",
		Status: "open", CreatedAt: now.Add(-2 * time.Second),
	})
	s := testSvc(f, nil)

	res, err := s.Submit(context.Background(), "c1", domain.SubmitInput{Email: "a@b.com", Description: "vpn broken"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Deduplicated {
		t.Fatalf("want deduplicated result")
	}
	if res.Ticket.ID != "existing" {
		t.Fatalf("want existing row reused, got %q", res.Ticket.ID)
	}
	if len(f.rows) != 1 {
		t.Fatalf("dedupe inserted anyway, rows = %d", len(f.rows))
	}
}

func TestSubmitOldMatchStillInserts(t *testing.T) {
	now := time.Now()
	f := &fakeRepo{now: now}
	f.rows = append(f.rows, repo.TicketRow{
		ID: "older", Email: "a@b.com", Description: "vpn broken",
		Status: "open", CreatedAt: now.Add(-20 * time.Second),
	})
	s := testSvc(f, nil)

	res, err := s.Submit(context.Background(), "c1", domain.SubmitInput{Email: "a@b.com", Description: "vpn broken"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Deduplicated {
		t.Fatalf("20s old match must not count as already created")
	}
	// cleanup keeps the oldest equal row inside its window only, so the
	// older row stays and the new one survives too
	if len(f.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(f.rows))
	}
}

func TestSubmitCleanupKeepsOldest(t *testing.T) {
	now := time.Now()
	f := &fakeRepo{now: now}
	// an equal row landed moments before ours, inside the cleanup window
	// but older than the already created cut
	f.rows = append(f.rows, repo.TicketRow{
		ID: "first", Email: "a@b.com", Description: "vpn broken",
		Status: "open", CreatedAt: now.Add(-7 * time.Second),
	})
	s := testSvc(f, nil)

	res, err := s.Submit(context.Background(), "c1", domain.SubmitInput{Email: "a@b.com", Description: "vpn broken"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Ticket.ID != "first" {
		t.Fatalf("cleanup should report the kept oldest row, got %q", res.Ticket.ID)
	}
	if len(f.rows) != 1 || f.rows[0].ID != "first" {
		t.Fatalf("cleanup kept wrong rows: %+v", f.rows)
	}
	if len(f.deleted) != 1 {
		t.Fatalf("deleted = %v, want exactly the extra row", f.deleted)
	}
}

func TestSubmitRecencyFailureStillInserts(t *testing.T) {
	f := &fakeRepo{recentErr: errors.New("pg down")}
	s := testSvc(f, nil)

	res, err := s.Submit(context.Background(), "c1", domain.SubmitInput{Email: "a@b.com", Description: "help"})
	if err != nil {
		t.Fatalf("submit should survive a failed recency read: %v", err)
	}
	if res.Ticket.ID == "" {
		t.Fatalf("missing created ticket")
	}
}

func TestSubmitQueueFailureIsBestEffort(t *testing.T) {
	f := &fakeRepo{}
	q := &fakeQueue{err: errors.New("projection down")}
	s := testSvc(f, q)

	res, err := s.Submit(context.Background(), "c1", domain.SubmitInput{Email: "a@b.com", Description: "help"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Position != 0 {
		t.Fatalf("position should be unknown when refresh fails, got %d", res.Position)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{"open", "in_progress", true},
		{"open", "resolved", true},
		{"in_progress", "resolved", true},
		{"in_progress", "open", false},
		{"resolved", "open", false},
		{"resolved", "in_progress", false},
	}
	for _, c := range cases {
		t.Run(c.from+"_to_"+c.to, func(t *testing.T) {
			f := &fakeRepo{rows: []repo.TicketRow{{ID: "t1", Email: "a@b.com", Status: c.from}}}
			s := testSvc(f, &fakeQueue{})

			got, err := s.UpdateStatus(context.Background(), "t1", domain.UpdateStatusInput{Status: c.to})
			if c.ok {
				if err != nil {
					t.Fatalf("transition %s -> %s: %v", c.from, c.to, err)
				}
				if got.Status != domain.Status(c.to) {
					t.Fatalf("status = %q, want %q", got.Status, c.to)
				}
				return
			}
			if !perr.IsCode(err, perr.ErrorCodeConflict) {
				t.Fatalf("want conflict for %s -> %s, got %v", c.from, c.to, err)
			}
		})
	}
}

func TestUpdateStatusUnknownTicket(t *testing.T) {
	s := testSvc(&fakeRepo{}, nil)
	_, err := s.UpdateStatus(context.Background(), "missing", domain.UpdateStatusInput{Status: "resolved"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestUpdateStatusBadValue(t *testing.T) {
	s := testSvc(&fakeRepo{}, nil)
	_, err := s.UpdateStatus(context.Background(), "t1", domain.UpdateStatusInput{Status: "closed"})
	if err == nil || !strings.Contains(err.Error(), "closed") {
		t.Fatalf("want parse error naming the value, got %v", err)
	}
}

func TestListRejectsBadStatusFilter(t *testing.T) {
	s := testSvc(&fakeRepo{}, nil)
	if _, _, err := s.List(context.Background(), domain.ListInput{Status: "weird"}); err == nil {
		t.Fatalf("want error for unknown status filter")
	}
}
