//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"helpdesk/internal/platform/store"
)

const ticketsDDL = `
create extension if not exists "pgcrypto";
create type ticket_status as enum ('open', 'in_progress', 'resolved');
create table tickets (
    id          uuid primary key default gen_random_uuid(),
    email       text not null,
    description text not null,
    status      ticket_status not null default 'open',
    created_at  timestamptz not null default now(),
    updated_at  timestamptz not null default now(),
    notified_at timestamptz
);
`

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func openStore(t *testing.T, dsn string) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn, ConnectRetries: 5},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

func TestTicketsRepo_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st := openStore(t, dsn)
	if _, err := st.PG.Exec(ctx, ticketsDDL); err != nil {
		t.Fatalf("apply ddl: %v", err)
	}
	r := NewPG().Bind(st.PG)

	created, err := r.Insert(ctx, "a@b.com", "vpn broken")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.Status != "open" {
		t.Fatalf("status = %q", created.Status)
	}

	got, err := r.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "a@b.com" {
		t.Fatalf("email = %q", got.Email)
	}

	matches, err := r.RecentOpenMatches(ctx, "a@b.com", "vpn broken", 30*time.Second)
	if err != nil {
		t.Fatalf("recent matches: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != created.ID {
		t.Fatalf("matches = %+v", matches)
	}
	if m, err := r.RecentOpenMatches(ctx, "a@b.com", "different", 30*time.Second); err != nil || len(m) != 0 {
		t.Fatalf("different description matched: %v %v", m, err)
	}

	updated, err := r.UpdateStatus(ctx, created.ID, "resolved")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != "resolved" {
		t.Fatalf("status = %q", updated.Status)
	}
	if m, err := r.RecentOpenMatches(ctx, "a@b.com", "vpn broken", 30*time.Second); err != nil || len(m) != 0 {
		t.Fatalf("resolved ticket still matches: %v %v", m, err)
	}

	second, err := r.Insert(ctx, "a@b.com", "vpn broken")
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if err := r.DeleteByIDs(ctx, []string{second.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	rows, total, err := r.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("total = %d rows = %d", total, len(rows))
	}

	byStatus, _, err := r.List(ctx, ListFilter{Status: "resolved"})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(byStatus) != 1 {
		t.Fatalf("resolved rows = %d", len(byStatus))
	}
}
