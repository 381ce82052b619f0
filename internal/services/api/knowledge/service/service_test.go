package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/services/api/knowledge/domain"
	"helpdesk/internal/services/api/knowledge/repo"
)

type fakeKBRepo struct {
	rows    []repo.EntryRow
	bumped  []string
	bumpErr error
}

func (f *fakeKBRepo) Insert(_ context.Context, question, answer, category string, keywords []string, priority int) (repo.EntryRow, error) {
	r := repo.EntryRow{
		ID: "k1", Question: question, Answer: answer,
		Category: category, Keywords: keywords, Priority: priority,
	}
	f.rows = append(f.rows, r)
	return r, nil
}

func (f *fakeKBRepo) Update(_ context.Context, id string, fields repo.UpdateFields) (repo.EntryRow, error) {
	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		if fields.Question != nil {
			f.rows[i].Question = *fields.Question
		}
		if fields.Answer != nil {
			f.rows[i].Answer = *fields.Answer
		}
		if fields.Keywords != nil {
			f.rows[i].Keywords = *fields.Keywords
		}
		return f.rows[i], nil
	}
	return repo.EntryRow{}, perr.ErrNotFound
}

func (f *fakeKBRepo) Delete(_ context.Context, id string) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return perr.ErrNotFound
}

func (f *fakeKBRepo) ListRanked(_ context.Context, limit int) ([]repo.EntryRow, error) {
	if limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func (f *fakeKBRepo) BumpUsage(_ context.Context, id string) error {
	if f.bumpErr != nil {
		return f.bumpErr
	}
	f.bumped = append(f.bumped, id)
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].UsageCount++
		}
	}
	return nil
}

func kbFixture() *fakeKBRepo {
	return &fakeKBRepo{rows: []repo.EntryRow{
		{ID: "vpn", Question: "How do I connect to the VPN?", Answer: "Install the client and sign in.", Keywords: []string{"vpn", "network"}, Priority: 10},
		{ID: "printer", Question: "Printer does not print", Answer: "Check the toner and the spooler.", Keywords: []string{"printer"}, Priority: 5},
		{ID: "password", Question: "How do I reset my password?", Answer: "Use the self service portal.", Keywords: []string{"password", "reset"}, Priority: 1},
	}}
}

func TestSearchMatchesByKeyword(t *testing.T) {
	f := kbFixture()
	s := &Svc{Repo: f}

	hits, err := s.Search(context.Background(), "my network is down")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "vpn" {
		t.Fatalf("hits = %+v, want the vpn entry", hits)
	}
}

func TestSearchMatchesQuestionContainment(t *testing.T) {
	f := kbFixture()
	s := &Svc{Repo: f}

	// the stored question is contained in the longer query
	hits, err := s.Search(context.Background(), "hello, printer does not print since friday")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) == 0 || hits[0].ID != "printer" {
		t.Fatalf("hits = %+v, want the printer entry first", hits)
	}
}

func TestSearchIgnoresShortTerms(t *testing.T) {
	f := kbFixture()
	s := &Svc{Repo: f}

	hits, err := s.Search(context.Background(), "a an is to of")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("hits = %+v, want none for stop words", hits)
	}
}

func TestSearchCapsResults(t *testing.T) {
	f := &fakeKBRepo{}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		f.rows = append(f.rows, repo.EntryRow{ID: id, Question: "wifi keeps dropping " + id})
	}
	s := &Svc{Repo: f}

	hits, err := s.Search(context.Background(), "wifi dropping")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != retrievalCap {
		t.Fatalf("hits = %d, want cap of %d", len(hits), retrievalCap)
	}
}

func TestSearchBumpsTopHit(t *testing.T) {
	f := kbFixture()
	s := &Svc{Repo: f}

	hits, err := s.Search(context.Background(), "vpn")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(f.bumped) != 1 || f.bumped[0] != "vpn" {
		t.Fatalf("bumped = %v", f.bumped)
	}
	if hits[0].UsageCount != 1 {
		t.Fatalf("usage count not reflected in result: %d", hits[0].UsageCount)
	}
}

func TestSearchBumpFailureIsBestEffort(t *testing.T) {
	f := kbFixture()
	f.bumpErr = errors.New("pg down")
	s := &Svc{Repo: f}

	hits, err := s.Search(context.Background(), "vpn")
	if err != nil {
		t.Fatalf("search must survive a failed bump: %v", err)
	}
	if len(hits) == 0 {
		t.Fatalf("want hits despite bump failure")
	}
}

func TestQueryTerms(t *testing.T) {
	got := queryTerms(`Why is my "VPN" broken?! (again)`)
	want := []string{"why", "vpn", "broken", "again"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("queryTerms = %v, want %v", got, want)
	}
}

func TestDeleteUnknownEntry(t *testing.T) {
	s := &Svc{Repo: kbFixture()}
	err := s.Delete(context.Background(), "missing")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestUpdateNormalizesKeywords(t *testing.T) {
	f := kbFixture()
	s := &Svc{Repo: f}

	kw := []string{" VPN ", "", "Remote"}
	got, err := s.Update(context.Background(), "vpn", domain.UpdateInput{Keywords: &kw})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !reflect.DeepEqual(got.Keywords, []string{"vpn", "remote"}) {
		t.Fatalf("keywords = %v", got.Keywords)
	}
}
