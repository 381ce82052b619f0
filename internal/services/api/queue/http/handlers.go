// Package http provides http transport for the public queue
package http

import (
	stdhttp "net/http"

	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/services/api/queue/domain"
	svc "helpdesk/internal/services/api/queue/service"
)

// Register mounts queue endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.board)
	httpkit.PostJSON[domain.PositionInput](r, "/position", h.position)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /queue Queue queueBoard
// @Summary Public queue of open tickets with anonymized emails
// @Tags Queue
// @Produce json
// @Success 200 {array} domain.Entry "ok"
// @Router /queue [get]
func (h *handlers) board(r *stdhttp.Request) (any, error) {
	return h.svc.Board(r.Context())
}

// swagger:route POST /queue/position Queue queuePosition
// @Summary Queue position for an email
// @Tags Queue
// @Accept json
// @Produce json
// @Param payload body domain.PositionInput true "Email"
// @Success 200 {object} domain.PositionResult "ok"
// @Router /queue/position [post]
func (h *handlers) position(r *stdhttp.Request, in domain.PositionInput) (any, error) {
	return h.svc.PositionFor(r.Context(), in)
}
