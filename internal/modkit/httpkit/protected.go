package httpkit

import (
	"helpdesk/internal/platform/net/middleware"
)

// Protected groups routes behind the admin session middleware
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
