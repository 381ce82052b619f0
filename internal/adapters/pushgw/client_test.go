package pushgw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(url string) *Client {
	c := NewClient(Options{BaseURL: url, ServerKey: "k", MaxRetries: 2, RetryBase: time.Millisecond})
	c.sleep = func(time.Duration) {}
	return c
}

func TestSendOK(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != sendPath {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "key=k" {
			t.Errorf("auth = %q", auth)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(sendResponse{Success: 1})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	err := c.Send(context.Background(), "tok-1", Notification{Title: "hi", Body: "there"}, map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.To != "tok-1" || got.Notification.Title != "hi" {
		t.Fatalf("request = %+v", got)
	}
}

func TestSendTokenGone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(sendResponse{
			Failure: 1,
			Results: []struct {
				Error string `json:"error"`
			}{{Error: "NotRegistered"}},
		})
	}))
	defer srv.Close()

	err := testClient(srv.URL).Send(context.Background(), "dead", Notification{}, nil)
	if !errors.Is(err, ErrTokenGone) {
		t.Fatalf("want ErrTokenGone, got %v", err)
	}
}

func TestSendRetriesTransient(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(sendResponse{Success: 1})
	}))
	defer srv.Close()

	if err := testClient(srv.URL).Send(context.Background(), "tok", Notification{}, nil); err != nil {
		t.Fatalf("send after retry: %v", err)
	}
	if hits != 2 {
		t.Fatalf("hits = %d, want 2", hits)
	}
}

func TestSendGivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if err := testClient(srv.URL).Send(context.Background(), "tok", Notification{}, nil); err == nil {
		t.Fatalf("want error after exhausting retries")
	}
}

func TestSendUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	if err := testClient(srv.URL).Send(context.Background(), "tok", Notification{}, nil); err == nil {
		t.Fatalf("want error on unexpected status")
	}
}
