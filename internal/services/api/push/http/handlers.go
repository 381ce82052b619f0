// Package http provides http transport for push registration
package http

import (
	stdhttp "net/http"

	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/services/api/push/domain"
	svc "helpdesk/internal/services/api/push/service"
)

// Register mounts push endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RegisterInput](r, "/register", h.register)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /push/register Push pushRegister
// @Summary Register a device token for new ticket notifications
// @Tags Push
// @Accept json
// @Produce json
// @Param payload body domain.RegisterInput true "Token"
// @Success 201 {object} domain.Registration "registered"
// @Router /push/register [post]
func (h *handlers) register(r *stdhttp.Request, in domain.RegisterInput) (any, error) {
	reg, err := h.svc.Register(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(reg), nil
}
