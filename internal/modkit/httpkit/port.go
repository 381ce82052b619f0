// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"net/http"

	perrs "helpdesk/internal/platform/errors"
)

// TokenFunc resolves a session token to an admin username
type TokenFunc func(r *http.Request, token string) (username string, err error)

// Port implements middleware.AuthPort by reading the session token and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple resolver function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse extracts the session token and resolves it to an admin username
// returns unauthorized when the token is missing, malformed, or unknown
func (p *Port) Parse(r *http.Request) (string, error) {
	raw, err := SessionToken(r)
	if err != nil {
		return "", err
	}

	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid session token")
	}

	user, err := p.parse(r, raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid session token")
	}
	return user, nil
}
