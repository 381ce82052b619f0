// Package http provides http transport for admin sessions
package http

import (
	stdhttp "net/http"

	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/services/api/admin/domain"
	svc "helpdesk/internal/services/api/admin/service"
)

// Register mounts admin session endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.LoginInput](r, "/login", h.login)
	httpkit.Post(r, "/logout", h.logout)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /admin/login Admin adminLogin
// @Summary Exchange the shared credentials for a session token
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body domain.LoginInput true "Credentials"
// @Success 200 {object} domain.LoginResult "ok"
// @Failure 401 {object} httpkit.Envelope "invalid credentials"
// @Router /admin/login [post]
func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	return h.svc.Login(r.Context(), in)
}

// swagger:route POST /admin/logout Admin adminLogout
// @Summary Revoke the current session token
// @Tags Admin
// @Produce json
// @Success 204 {object} nil "revoked"
// @Router /admin/logout [post]
func (h *handlers) logout(r *stdhttp.Request) (any, error) {
	token, err := httpkit.SessionToken(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Logout(r.Context(), token); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
