package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFoundf("ticket %s", "abc"), http.StatusNotFound},
		{Validationf("bad email"), http.StatusBadRequest},
		{Unauthorizedf("no session"), http.StatusUnauthorized},
		{TooManyf("duplicate submission"), http.StatusTooManyRequests},
		{Conflictf("stale entry"), http.StatusConflict},
		{New(ErrorCodeUnavailable, "db down"), http.StatusServiceUnavailable},
		{stderrs.New("plain"), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestWireFromCarriesField(t *testing.T) {
	err := WithField(Validationf("must not be blank"), "description")
	w := WireFrom(err)
	if w.Code != ErrorCodeValidation {
		t.Fatalf("code = %d, want validation", w.Code)
	}
	if w.Field != "description" {
		t.Fatalf("field = %q, want description", w.Field)
	}
	if w.Message == "" {
		t.Fatal("message should survive the conversion")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrs.New("connection refused")
	err := Wrapf(cause, ErrorCodeUnavailable, "ping failed")
	if !stderrs.Is(err, cause) {
		t.Fatal("wrapped cause should be reachable via errors.Is")
	}
	if Root(err) != cause {
		t.Fatalf("Root = %v, want original cause", Root(err))
	}
	if !IsCode(err, ErrorCodeUnavailable) {
		t.Fatal("code should be unavailable")
	}
}

func TestFromPostgresClassifies(t *testing.T) {
	cases := []struct {
		sqlstate string
		want     ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23503", ErrorCodeConflict},
		{"23502", ErrorCodeInvalidArgument},
		{"40001", ErrorCodeUnavailable},
		{"57P03", ErrorCodeUnavailable},
		{"42601", ErrorCodeDB},
	}
	for _, c := range cases {
		raw := fmt.Errorf("exec: %w", &pgconn.PgError{Code: c.sqlstate})
		err := FromPostgres(raw, "insert ticket")
		if !IsCode(err, c.want) {
			t.Fatalf("sqlstate %s classified as %d, want %d", c.sqlstate, CodeOf(err), c.want)
		}
	}
	if FromPostgres(nil, "noop") != nil {
		t.Fatal("nil in, nil out")
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if !IsDuplicateKey(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("raw unique violation should count")
	}
	if !IsDuplicateKey(New(ErrorCodeDuplicateKey, "dup")) {
		t.Fatal("classified duplicate should count")
	}
	if IsDuplicateKey(stderrs.New("other")) {
		t.Fatal("plain error should not count")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&pgconn.PgError{Code: "40P01"}) {
		t.Fatal("deadlock should be retryable")
	}
	if !IsRetryable(New(ErrorCodeUnavailable, "down")) {
		t.Fatal("unavailable should be retryable")
	}
	if IsRetryable(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violation is not retryable")
	}
}
