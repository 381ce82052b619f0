// Package http provides http transport for dashboard stats
package http

import (
	stdhttp "net/http"

	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/platform/net/middleware"
	svc "helpdesk/internal/services/api/stats/service"
)

// Register mounts stats endpoints behind the admin session
func Register(r httpkit.Router, s svc.Service, admin middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.Protected(r, admin, func(pr httpkit.Router) {
		httpkit.Get(pr, "/dashboard", h.dashboard)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route GET /stats/dashboard Stats statsDashboard
// @Summary Month window ticket summary for the admin dashboard
// @Tags Stats
// @Produce json
// @Success 200 {object} domain.Dashboard "ok"
// @Router /stats/dashboard [get]
func (h *handlers) dashboard(r *stdhttp.Request) (any, error) {
	return h.svc.Dashboard(r.Context())
}
