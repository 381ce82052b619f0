package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/platform/session"
	"helpdesk/internal/services/api/admin/domain"
)

func testService(t *testing.T) *Svc {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := session.NewRedisStoreWithClient(client, time.Hour)
	return New(store, Config{Username: "admin", Password: "s3cret"})
}

func TestLoginAndVerify(t *testing.T) {
	s := testService(t)

	res, err := s.Login(context.Background(), domain.LoginInput{Username: "admin", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("missing session token")
	}
	if res.Username != "admin" {
		t.Fatalf("username = %q", res.Username)
	}
	if !res.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", res.ExpiresAt)
	}

	user, err := s.Verify(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user != "admin" {
		t.Fatalf("verified user = %q", user)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := testService(t)

	cases := []domain.LoginInput{
		{Username: "admin", Password: "wrong"},
		{Username: "wrong", Password: "s3cret"},
		{Username: "", Password: ""},
	}
	for _, in := range cases {
		if _, err := s.Login(context.Background(), in); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
			t.Fatalf("login(%q/%q): want unauthorized, got %v", in.Username, in.Password, err)
		}
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	s := testService(t)

	res, err := s.Login(context.Background(), domain.LoginInput{Username: "admin", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := s.Logout(context.Background(), res.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := s.Verify(context.Background(), res.Token); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("verify after logout: want unauthorized, got %v", err)
	}
}

func TestLogoutWithoutTokenIsNoop(t *testing.T) {
	s := testService(t)
	if err := s.Logout(context.Background(), ""); err != nil {
		t.Fatalf("empty token logout: %v", err)
	}
}

func TestVerifyUnknownToken(t *testing.T) {
	s := testService(t)
	if _, err := s.Verify(context.Background(), "nope"); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
}
