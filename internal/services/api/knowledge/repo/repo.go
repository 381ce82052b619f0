// Package repo provides postgres access for the knowledge base
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"helpdesk/internal/modkit/repokit"
	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/platform/store"
)

// EntryRow is a knowledge base row from the database
type EntryRow struct {
	ID         string
	Question   string
	Answer     string
	Category   string
	Keywords   []string
	UsageCount int
	Priority   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UpdateFields carries the optional column updates; nil keeps current value
type UpdateFields struct {
	Question *string
	Answer   *string
	Category *string
	Keywords *[]string
	Priority *int
}

// Repo defines the repository contract for knowledge entries
type Repo interface {
	Insert(ctx context.Context, question, answer, category string, keywords []string, priority int) (EntryRow, error)
	Update(ctx context.Context, id string, f UpdateFields) (EntryRow, error)
	Delete(ctx context.Context, id string) error
	// ListRanked returns entries ordered by priority then popularity
	ListRanked(ctx context.Context, limit int) ([]EntryRow, error)
	// BumpUsage increments the usage counter of one entry
	BumpUsage(ctx context.Context, id string) error
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

const entryCols = `id::text, question, answer, category, keywords, usage_count, priority, created_at, updated_at`

func scanEntry(r repokit.Row) (EntryRow, error) {
	var e EntryRow
	err := r.Scan(&e.ID, &e.Question, &e.Answer, &e.Category, &e.Keywords, &e.UsageCount, &e.Priority, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *queries) Insert(ctx context.Context, question, answer, category string, keywords []string, priority int) (EntryRow, error) {
	if category == "" {
		category = "general"
	}
	if keywords == nil {
		keywords = []string{}
	}
	const sql = `
insert into knowledge_base (id, question, answer, category, keywords, priority)
values ($1, $2, $3, $4, $5, $6)
returning ` + entryCols
	return store.One(ctx, r.q, scanEntry, sql, uuid.NewString(), question, answer, category, keywords, priority)
}

func (r *queries) Update(ctx context.Context, id string, f UpdateFields) (EntryRow, error) {
	const sql = `
update knowledge_base
set question = coalesce($2, question),
answer = coalesce($3, answer),
category = coalesce($4, category),
keywords = coalesce($5, keywords),
priority = coalesce($6, priority),
updated_at = now()
where id = $1
returning ` + entryCols
	var kw any
	if f.Keywords != nil {
		kw = *f.Keywords
	}
	return store.One(ctx, r.q, scanEntry, sql, id, f.Question, f.Answer, f.Category, kw, f.Priority)
}

func (r *queries) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `delete from knowledge_base where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.ErrNotFound
	}
	return nil
}

func (r *queries) ListRanked(ctx context.Context, limit int) ([]EntryRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const sql = `
select ` + entryCols + `
from knowledge_base
order by priority desc, usage_count desc, created_at asc
limit $1
`
	return store.Many(ctx, r.q, scanEntry, sql, limit)
}

func (r *queries) BumpUsage(ctx context.Context, id string) error {
	const sql = `update knowledge_base set usage_count = usage_count + 1, updated_at = now() where id = $1`
	_, err := r.q.Exec(ctx, sql, id)
	return err
}
