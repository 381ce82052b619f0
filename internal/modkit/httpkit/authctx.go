package httpkit

import (
	"net"
	"net/http"
	"strings"

	perrs "helpdesk/internal/platform/errors"
	pnet "helpdesk/internal/platform/net"
)

// AdminUser returns the authenticated admin username from the request context
func AdminUser(r *http.Request) (string, error) {
	u := pnet.AdminUser(r.Context())
	if u == "" {
		return "", perrs.Unauthorizedf("missing admin session")
	}
	return u, nil
}

// ClientKey identifies the submitting browser session
// prefers the X-Client-Key header, falls back to the client IP
func ClientKey(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get("X-Client-Key")); k != "" {
		return k
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// SessionToken returns the raw admin session token from the request
// accepts Authorization Bearer or the X-Admin-Token header
func SessionToken(r *http.Request) (string, error) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz != "" {
		const prefix = "bearer"
		ls := strings.ToLower(authz)
		if !strings.HasPrefix(ls, prefix) {
			return "", perrs.Unauthorizedf("missing session token")
		}
		raw := strings.TrimSpace(authz[len(prefix):])
		if raw == "" {
			return "", perrs.Unauthorizedf("missing session token")
		}
		return raw, nil
	}
	if t := strings.TrimSpace(r.Header.Get("X-Admin-Token")); t != "" {
		return t, nil
	}
	return "", perrs.Unauthorizedf("missing session token")
}
