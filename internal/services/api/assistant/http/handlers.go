// Package http provides http transport for the assistant
package http

import (
	stdhttp "net/http"

	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/services/api/assistant/domain"
	svc "helpdesk/internal/services/api/assistant/service"
)

// Register mounts assistant endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.AskInput](r, "/ask", h.ask)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /assistant/ask Assistant assistantAsk
// @Summary Ask the help desk assistant
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body domain.AskInput true "Problem statement"
// @Success 200 {object} domain.AskResult "ok"
// @Failure 503 {object} httpkit.Envelope "assistant unavailable"
// @Router /assistant/ask [post]
func (h *handlers) ask(r *stdhttp.Request, in domain.AskInput) (any, error) {
	return h.svc.Ask(r.Context(), in)
}
