package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdaptChi wraps a *chi.Mux in the platform Router seam
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m, mux: m} }

// chiRouter adapts chi routers, keeping the top level mux for Mux()
// the same type serves the root and every subrouter
type chiRouter struct {
	r   chi.Router
	mux http.Handler
}

func (c chiRouter) method(verb, p string, h Handler) {
	c.r.Method(verb, p, http.HandlerFunc(h))
}

func (c chiRouter) Get(p string, h Handler)    { c.method(http.MethodGet, p, h) }
func (c chiRouter) Post(p string, h Handler)   { c.method(http.MethodPost, p, h) }
func (c chiRouter) Put(p string, h Handler)    { c.method(http.MethodPut, p, h) }
func (c chiRouter) Patch(p string, h Handler)  { c.method(http.MethodPatch, p, h) }
func (c chiRouter) Delete(p string, h Handler) { c.method(http.MethodDelete, p, h) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub, mux: c.mux}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub, mux: c.mux}) })
}

func (c chiRouter) Mux() http.Handler { return c.mux }
