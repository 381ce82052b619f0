// Package http provides http transport for the knowledge base
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/platform/net/middleware"
	"helpdesk/internal/services/api/knowledge/domain"
	svc "helpdesk/internal/services/api/knowledge/service"
)

// Register mounts knowledge endpoints on the given router
// search is public so the self service page works without a session; curation
// requires the admin session
func Register(r httpkit.Router, s svc.Service, admin middleware.AuthPort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)

	httpkit.Protected(r, admin, func(pr httpkit.Router) {
		httpkit.Get(pr, "/", h.list)
		httpkit.PostJSON[domain.CreateInput](pr, "/", h.create)
		httpkit.PutJSON[domain.UpdateInput](pr, "/{id}", h.update)
		httpkit.Delete(pr, "/{id}", h.remove)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /knowledge/search Knowledge knowledgeSearch
// @Summary Retrieve the most relevant entries for a query
// @Tags Knowledge
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Query"
// @Success 200 {array} domain.Entry "ok"
// @Router /knowledge/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in.Query)
}

// swagger:route GET /knowledge Knowledge knowledgeList
// @Summary List entries, highest priority first
// @Tags Knowledge
// @Produce json
// @Success 200 {array} domain.Entry "ok"
// @Router /knowledge [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route POST /knowledge Knowledge knowledgeCreate
// @Summary Create an entry
// @Tags Knowledge
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Entry"
// @Success 201 {object} domain.Entry "created"
// @Router /knowledge [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	e, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(e), nil
}

// swagger:route PUT /knowledge/{id} Knowledge knowledgeUpdate
// @Summary Update an entry
// @Tags Knowledge
// @Accept json
// @Produce json
// @Param id path string true "entry id"
// @Param payload body domain.UpdateInput true "Changes"
// @Success 200 {object} domain.Entry "ok"
// @Router /knowledge/{id} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
}

// swagger:route DELETE /knowledge/{id} Knowledge knowledgeDelete
// @Summary Delete an entry
// @Tags Knowledge
// @Produce json
// @Param id path string true "entry id"
// @Success 204 {object} nil "deleted"
// @Router /knowledge/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
