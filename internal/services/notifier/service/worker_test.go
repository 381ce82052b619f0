package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"helpdesk/internal/adapters/pushgw"
	"helpdesk/internal/platform/logger"
	nrepo "helpdesk/internal/services/notifier/repo"
)

type fakeNotifierRepo struct {
	pending []nrepo.PendingTicket
	tokens  []string
	marked  []string
	dropped []string
}

func (f *fakeNotifierRepo) LeasePending(_ context.Context, limit int) ([]nrepo.PendingTicket, error) {
	if limit < len(f.pending) {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeNotifierRepo) MarkNotified(_ context.Context, id string) error {
	f.marked = append(f.marked, id)
	return nil
}

func (f *fakeNotifierRepo) ListTokens(context.Context) ([]string, error) {
	return f.tokens, nil
}

func (f *fakeNotifierRepo) DeleteToken(_ context.Context, token string) error {
	f.dropped = append(f.dropped, token)
	return nil
}

func gateway(t *testing.T, handler http.HandlerFunc) *pushgw.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return pushgw.NewClient(pushgw.Options{BaseURL: srv.URL, MaxRetries: 1, RetryBase: time.Millisecond})
}

func TestAnnounceSendsNotification(t *testing.T) {
	var got struct {
		To           string `json:"to"`
		Notification struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		} `json:"notification"`
		Data map[string]any `json:"data"`
	}
	push := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"success":1}`))
	})

	f := &fakeNotifierRepo{}
	s := &Svc{repo: f, push: push}

	tk := nrepo.PendingTicket{ID: "t1", Email: "a@b.com", Description: "my laptop\nwill not boot"}
	s.announce(context.Background(), tk, "tok-1", logger.Named("test"))

	if got.To != "tok-1" {
		t.Fatalf("to = %q", got.To)
	}
	if got.Notification.Title != "New support ticket" {
		t.Fatalf("title = %q", got.Notification.Title)
	}
	if !strings.Contains(got.Notification.Body, "a@b.com") {
		t.Fatalf("body = %q", got.Notification.Body)
	}
	if strings.Contains(got.Notification.Body, "\n") {
		t.Fatalf("body not folded: %q", got.Notification.Body)
	}
	if got.Data["ticket_id"] != "t1" {
		t.Fatalf("data = %v", got.Data)
	}
	if len(f.dropped) != 0 {
		t.Fatalf("healthy token dropped: %v", f.dropped)
	}
}

func TestAnnounceDropsDeadToken(t *testing.T) {
	push := gateway(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"failure":1,"results":[{"error":"NotRegistered"}]}`))
	})

	f := &fakeNotifierRepo{}
	s := &Svc{repo: f, push: push}

	s.announce(context.Background(), nrepo.PendingTicket{ID: "t1", Email: "a@b.com"}, "dead", logger.Named("test"))

	if len(f.dropped) != 1 || f.dropped[0] != "dead" {
		t.Fatalf("dropped = %v, want the dead token", f.dropped)
	}
}

func TestPreview(t *testing.T) {
	cases := []struct{ in, want string }{
		{"short", "short"},
		{"line\none", "line one"},
		{"  spaced   out  ", "spaced out"},
	}
	for _, c := range cases {
		if got := preview(c.in); got != c.want {
			t.Fatalf("preview(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	long := strings.Repeat("x", 200)
	got := preview(long)
	if len(got) != descriptionPreviewLen+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("long preview = %q", got)
	}
}
