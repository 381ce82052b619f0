package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"helpdesk/internal/services/api/tickets/domain"
	"helpdesk/internal/services/api/tickets/repo"
)

func TestExportCSVShape(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	f := &fakeRepo{rows: []repo.TicketRow{{
		ID: "t1", Email: "a@b.com", Description: "printer jam",
		Status: "open", CreatedAt: created, UpdatedAt: created,
	}}}
	s := testSvc(f, nil)

	data, name, err := s.ExportCSV(context.Background(), domain.ExportInput{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	out := string(data)
	if !strings.HasPrefix(out, "\uFEFF") {
		t.Fatalf("missing BOM prefix")
	}
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\uFEFF"), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header plus one row", len(lines))
	}
	if lines[0] != "ID;Email;Description;Status;CreatedAt;UpdatedAt" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "t1;a@b.com;printer jam;open;2025-03-01 09:30:00;2025-03-01 09:30:00" {
		t.Fatalf("row = %q", lines[1])
	}

	if !strings.HasPrefix(name, "tickets_") || !strings.HasSuffix(name, ".csv") {
		t.Fatalf("filename = %q", name)
	}
}

func TestExportCSVFoldsAndQuotes(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	f := &fakeRepo{rows: []repo.TicketRow{{
		ID: "t1", Email: "a@b.com",
		Description: "line one\r\nline two; with \"quotes\"",
		Status:      "open", CreatedAt: created, UpdatedAt: created,
	}}}
	s := testSvc(f, nil)

	data, _, err := s.ExportCSV(context.Background(), domain.ExportInput{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	out := strings.TrimPrefix(string(data), "\uFEFF")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("folded description must stay on one line, got %d lines", len(lines))
	}
	// newline folded to a space, separator folded to a comma, quotes doubled
	want := `t1;a@b.com;"line one line two, with ""quotes""";open;2025-03-01 09:30:00;2025-03-01 09:30:00`
	if lines[1] != want {
		t.Fatalf("row = %q, want %q", lines[1], want)
	}
}

func TestFoldDescription(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain", "plain"},
		{"a\r\nb", "a b"},
		{"a\nb\nc", "a b c"},
		{"x; y", "x, y"},
		{"a\rb", "ab"},
	}
	for _, c := range cases {
		if got := foldDescription(c.in); got != c.want {
			t.Fatalf("foldDescription(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
