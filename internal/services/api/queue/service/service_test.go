package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"helpdesk/internal/services/api/queue/domain"
	"helpdesk/internal/services/api/queue/repo"
)

type fakeQueueRepo struct {
	rows  []repo.OpenTicket
	err   error
	calls int
}

func (f *fakeQueueRepo) ListOpenAsc(context.Context) ([]repo.OpenTicket, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func open(id, email string, age time.Duration) repo.OpenTicket {
	return repo.OpenTicket{ID: id, Email: email, Status: "open", CreatedAt: time.Now().Add(-age)}
}

func TestPositionForOK(t *testing.T) {
	f := &fakeQueueRepo{rows: []repo.OpenTicket{
		open("1", "first@corp.com", 3*time.Minute),
		open("2", "second@corp.com", 2*time.Minute),
		open("3", "third@corp.com", time.Minute),
	}}
	s := &Svc{Repo: f}

	res, err := s.PositionFor(context.Background(), domain.PositionInput{Email: "Second@Corp.com"})
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	if res.Outcome != domain.OutcomeOK {
		t.Fatalf("outcome = %q", res.Outcome)
	}
	if res.Position != 2 || res.Total != 3 {
		t.Fatalf("position = %d total = %d", res.Position, res.Total)
	}
	if len(res.Ahead) != 1 || res.Ahead[0] != "fir***@corp.com" {
		t.Fatalf("ahead = %v", res.Ahead)
	}
}

func TestPositionForEmptyQueue(t *testing.T) {
	s := &Svc{Repo: &fakeQueueRepo{}}

	res, err := s.PositionFor(context.Background(), domain.PositionInput{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	if res.Outcome != domain.OutcomeQueueEmpty {
		t.Fatalf("outcome = %q, want queue_empty", res.Outcome)
	}
}

func TestPositionForNotFound(t *testing.T) {
	f := &fakeQueueRepo{rows: []repo.OpenTicket{open("1", "present@corp.com", time.Minute)}}
	s := &Svc{Repo: f}

	res, err := s.PositionFor(context.Background(), domain.PositionInput{Email: "absent@corp.com"})
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	if res.Outcome != domain.OutcomeNotFound {
		t.Fatalf("outcome = %q, want not_found", res.Outcome)
	}
	if res.Total != 1 {
		t.Fatalf("total = %d, want 1", res.Total)
	}
}

func TestPositionForAlwaysRefreshes(t *testing.T) {
	f := &fakeQueueRepo{rows: []repo.OpenTicket{open("1", "a@b.com", time.Minute)}}
	s := &Svc{Repo: f}

	for range 3 {
		if _, err := s.PositionFor(context.Background(), domain.PositionInput{Email: "a@b.com"}); err != nil {
			t.Fatalf("position: %v", err)
		}
	}
	if f.calls != 3 {
		t.Fatalf("repo calls = %d, want one per lookup", f.calls)
	}
}

func TestBoardMasksEmails(t *testing.T) {
	f := &fakeQueueRepo{rows: []repo.OpenTicket{
		open("1", "longname@corp.com", 2*time.Minute),
		open("2", "ab@corp.com", time.Minute),
	}}
	s := &Svc{Repo: f}

	board, err := s.Board(context.Background())
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("board size = %d", len(board))
	}
	if board[0].Email != "lon***@corp.com" || board[0].Position != 1 {
		t.Fatalf("board[0] = %+v", board[0])
	}
	if board[1].Email != "ab@corp.com" || board[1].Position != 2 {
		t.Fatalf("board[1] = %+v", board[1])
	}
}

func TestBoardServesFreshSnapshotWithoutRefetch(t *testing.T) {
	f := &fakeQueueRepo{rows: []repo.OpenTicket{open("1", "a@b.com", time.Minute)}}
	s := &Svc{Repo: f}

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := s.Board(context.Background()); err != nil {
		t.Fatalf("board: %v", err)
	}
	if f.calls != 1 {
		t.Fatalf("repo calls = %d, fresh snapshot should be reused", f.calls)
	}
}

func TestCurrentServesStaleOnRefreshFailure(t *testing.T) {
	f := &fakeQueueRepo{rows: []repo.OpenTicket{open("1", "a@b.com", time.Minute)}}
	s := &Svc{Repo: f}

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	// age the snapshot past the freshness cut and break the repo
	s.mu.Lock()
	s.fetchedAt = time.Now().Add(-2 * snapshotMaxAge)
	s.mu.Unlock()
	f.err = errors.New("pg down")

	board, err := s.Board(context.Background())
	if err != nil {
		t.Fatalf("stale snapshot should still serve: %v", err)
	}
	if len(board) != 1 {
		t.Fatalf("board size = %d", len(board))
	}
}

func TestCurrentFailsWithoutAnySnapshot(t *testing.T) {
	s := &Svc{Repo: &fakeQueueRepo{err: errors.New("pg down")}}
	if _, err := s.Board(context.Background()); err == nil {
		t.Fatalf("want error when no snapshot exists yet")
	}
}

func TestDedupeByID(t *testing.T) {
	rows := []repo.OpenTicket{
		{ID: "1", Email: "a@b.com"},
		{ID: "2", Email: "b@b.com"},
		{ID: "1", Email: "a@b.com"},
	}
	out := dedupeByID(rows)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ID != "1" || out[1].ID != "2" {
		t.Fatalf("order not preserved: %+v", out)
	}
}
