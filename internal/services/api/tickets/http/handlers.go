// Package http provides http transport for tickets
package http

import (
	stdhttp "net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"helpdesk/internal/modkit/httpkit"
	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/platform/logger"
	"helpdesk/internal/platform/net/middleware"
	ptime "helpdesk/internal/platform/time"
	"helpdesk/internal/services/api/tickets/domain"
	svc "helpdesk/internal/services/api/tickets/service"
)

// Register mounts ticket endpoints on the given router
// submission is public; listing, status changes, and export sit behind the
// admin session
func Register(r httpkit.Router, s svc.Service, admin middleware.AuthPort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.SubmitInput](r, "/", h.submit)

	httpkit.Protected(r, admin, func(pr httpkit.Router) {
		httpkit.Get(pr, "/", h.list)
		httpkit.PatchJSON[domain.UpdateStatusInput](pr, "/{id}/status", h.updateStatus)
		httpkit.Get(pr, "/export", h.export)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /tickets Tickets ticketsSubmit
// @Summary Submit a support ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Ticket"
// @Success 201 {object} domain.SubmitResult "created or deduplicated"
// @Router /tickets [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	res, err := h.svc.Submit(r.Context(), httpkit.ClientKey(r), in)
	if err != nil {
		return nil, err
	}
	if res.Deduplicated {
		return res, nil
	}
	return httpkit.Created(res), nil
}

// swagger:route GET /tickets Tickets ticketsList
// @Summary List tickets, newest first
// @Tags Tickets
// @Produce json
// @Param status query string false "status filter"
// @Param from query string false "created on or after, yyyy-mm-dd"
// @Param to query string false "created on or before, yyyy-mm-dd"
// @Param page query int false "page number"
// @Param page_size query int false "page size"
// @Success 200 {array} domain.Ticket "ok"
// @Router /tickets [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	in := domain.ListInput{
		Status:   q.Get("status"),
		From:     q.Get("from"),
		To:       q.Get("to"),
		Page:     atoiOr(q.Get("page"), 1),
		PageSize: atoiOr(q.Get("page_size"), 50),
	}
	items, total, err := h.svc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.List(items, total, in.Page, in.PageSize), nil
}

// swagger:route PATCH /tickets/{id}/status Tickets ticketsStatus
// @Summary Transition a ticket status
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path string true "ticket id"
// @Param payload body domain.UpdateStatusInput true "New status"
// @Success 200 {object} domain.Ticket "ok"
// @Router /tickets/{id}/status [patch]
func (h *handlers) updateStatus(r *stdhttp.Request, in domain.UpdateStatusInput) (any, error) {
	id := chi.URLParam(r, "id")
	t, err := h.svc.UpdateStatus(r.Context(), id, in)
	if err != nil {
		return nil, err
	}
	if admin, aerr := httpkit.AdminUser(r); aerr == nil {
		logger.C(r.Context()).Info().
			Str("ticket_id", id).
			Str("status", in.Status).
			Str("admin", admin).
			Msg("ticket status changed")
	}
	return t, nil
}

// swagger:route GET /tickets/export Tickets ticketsExport
// @Summary Export tickets as semicolon separated CSV
// @Tags Tickets
// @Produce text/csv
// @Param from query string false "created on or after, yyyy-mm-dd"
// @Param to query string false "created on or before, yyyy-mm-dd"
// @Success 200 {string} string "csv download"
// @Router /tickets/export [get]
func (h *handlers) export(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	in, err := parseExportInput(q.Get("from"), q.Get("to"))
	if err != nil {
		return nil, err
	}
	data, name, err := h.svc.ExportCSV(r.Context(), in)
	if err != nil {
		return nil, err
	}
	resp := httpkit.Blob(stdhttp.StatusOK, "text/csv; charset=utf-8", data)
	resp.Header = stdhttp.Header{"Content-Disposition": []string{`attachment; filename="` + name + `"`}}
	return resp, nil
}

// parseExportInput converts inclusive yyyy-mm-dd query bounds
func parseExportInput(from, to string) (domain.ExportInput, error) {
	var in domain.ExportInput
	if from != "" {
		d, err := time.Parse("2006-01-02", from)
		if err != nil {
			return in, perr.WithField(perr.Validationf("from must be yyyy-mm-dd"), "from")
		}
		lo, _ := ptime.DayBounds(d)
		in.From = &lo
	}
	if to != "" {
		d, err := time.Parse("2006-01-02", to)
		if err != nil {
			return in, perr.WithField(perr.Validationf("to must be yyyy-mm-dd"), "to")
		}
		_, hi := ptime.DayBounds(d)
		in.To = &hi
	}
	return in, nil
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
