// Package module wires knowledge into the API using modkit
package module

import (
	"net/http"

	modkit "helpdesk/internal/modkit"
	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/platform/net/middleware"
	str "helpdesk/internal/platform/strings"
	knowledgehttp "helpdesk/internal/services/api/knowledge/http"
	knowledgerepo "helpdesk/internal/services/api/knowledge/repo"
	knowledgesvc "helpdesk/internal/services/api/knowledge/service"
)

// Ports declares the cross module dependencies knowledge consumes
type Ports struct {
	// Admin guards the curation endpoints
	Admin middleware.AuthPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc knowledgesvc.Service
}

// New constructs a knowledge module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("knowledge"), modkit.WithPrefix("/knowledge")}, opts...)...)

	in, _ := b.Ports.(Ports)

	repo := knowledgerepo.NewPG()
	svc := knowledgesvc.New(deps.PG, repo)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptKnowledgePort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		knowledgehttp.Register(r, m.svc, in.Admin)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, m.subrouter, m.register)
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
