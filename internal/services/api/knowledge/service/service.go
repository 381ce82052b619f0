// Package service contains knowledge base curation and retrieval
package service

import (
	"context"
	"strings"

	"helpdesk/internal/modkit/repokit"
	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/platform/logger"
	"helpdesk/internal/services/api/knowledge/domain"
	"helpdesk/internal/services/api/knowledge/repo"
)

// Retrieval tuning
const (
	// how many ranked rows are considered per query
	retrievalCandidates = 50

	// how many entries a query may return
	retrievalCap = 3

	// terms shorter than this carry no signal
	minTermLen = 3
)

// Service defines the service contract for knowledge
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new knowledge service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("knowledge.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("knowledge.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Create stores a curated entry
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Entry, error) {
	row, err := s.Repo.Insert(ctx, strings.TrimSpace(in.Question), strings.TrimSpace(in.Answer), strings.TrimSpace(in.Category), normalizeKeywords(in.Keywords), in.Priority)
	if err != nil {
		return domain.Entry{}, perr.FromPostgres(err, "knowledge insert")
	}
	return toEntry(row), nil
}

// Update patches an entry; nil fields keep their stored value
func (s *Svc) Update(ctx context.Context, id string, in domain.UpdateInput) (domain.Entry, error) {
	f := repo.UpdateFields{
		Question: in.Question,
		Answer:   in.Answer,
		Category: in.Category,
		Priority: in.Priority,
	}
	if in.Keywords != nil {
		kw := normalizeKeywords(*in.Keywords)
		f.Keywords = &kw
	}
	row, err := s.Repo.Update(ctx, id, f)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Entry{}, perr.NotFoundf("knowledge entry %s not found", id)
		}
		return domain.Entry{}, perr.FromPostgres(err, "knowledge update")
	}
	return toEntry(row), nil
}

// Delete removes an entry
func (s *Svc) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return perr.NotFoundf("knowledge entry %s not found", id)
		}
		return perr.FromPostgres(err, "knowledge delete")
	}
	return nil
}

// List returns all entries, highest priority first
func (s *Svc) List(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.Repo.ListRanked(ctx, 200)
	if err != nil {
		return nil, perr.FromPostgres(err, "knowledge list")
	}
	out := make([]domain.Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, toEntry(r))
	}
	return out, nil
}

// Search returns the most relevant entries for a free text query, capped
// the top hit gets its usage counter bumped, best effort
func (s *Svc) Search(ctx context.Context, query string) ([]domain.Entry, error) {
	rows, err := s.Repo.ListRanked(ctx, retrievalCandidates)
	if err != nil {
		return nil, perr.FromPostgres(err, "knowledge search")
	}

	terms := queryTerms(query)
	q := strings.ToLower(strings.TrimSpace(query))

	var hits []domain.Entry
	for _, r := range rows {
		if relevant(r, q, terms) {
			hits = append(hits, toEntry(r))
			if len(hits) == retrievalCap {
				break
			}
		}
	}

	if len(hits) > 0 {
		if err := s.Repo.BumpUsage(ctx, hits[0].ID); err != nil {
			logger.C(ctx).Warn().Err(err).Str("entry_id", hits[0].ID).Msg("usage bump failed")
		} else {
			hits[0].UsageCount++
		}
	}
	return hits, nil
}

// relevant reports whether an entry matches the query
// a hit is any term contained in the question, answer, or keywords, or
// substring containment between question and query in either direction
func relevant(r repo.EntryRow, q string, terms []string) bool {
	question := strings.ToLower(r.Question)
	answer := strings.ToLower(r.Answer)

	if q != "" && (strings.Contains(question, q) || strings.Contains(q, question)) {
		return true
	}
	for _, t := range terms {
		if strings.Contains(question, t) || strings.Contains(answer, t) {
			return true
		}
		for _, kw := range r.Keywords {
			if strings.Contains(strings.ToLower(kw), t) {
				return true
			}
		}
	}
	return false
}

// queryTerms splits the query into lowercase terms long enough to matter
func queryTerms(query string) []string {
	var out []string
	for _, f := range strings.Fields(strings.ToLower(query)) {
		f = strings.Trim(f, ".,;:!?\"'()")
		if len(f) >= minTermLen {
			out = append(out, f)
		}
	}
	return out
}

func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func toEntry(r repo.EntryRow) domain.Entry {
	return domain.Entry{
		ID:         r.ID,
		Question:   r.Question,
		Answer:     r.Answer,
		Category:   r.Category,
		Keywords:   r.Keywords,
		UsageCount: r.UsageCount,
		Priority:   r.Priority,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
