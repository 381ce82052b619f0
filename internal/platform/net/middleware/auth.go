package middleware

import (
	"net/http"

	pnet "helpdesk/internal/platform/net"
)

// AuthPort is the seam the admin session service implements
type AuthPort interface {
	// Parse returns the admin username for a valid session token or an error
	Parse(r *http.Request) (username string, err error)
}

// Auth gates requests behind the port. Nil port passes everything through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			user, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithAdmin(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
