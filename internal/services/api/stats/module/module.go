// Package module wires stats into the API using modkit
package module

import (
	"context"
	"net/http"

	modkit "helpdesk/internal/modkit"
	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/platform/net/middleware"
	str "helpdesk/internal/platform/strings"
	statsdom "helpdesk/internal/services/api/stats/domain"
	statshttp "helpdesk/internal/services/api/stats/http"
	statsrepo "helpdesk/internal/services/api/stats/repo"
	statssvc "helpdesk/internal/services/api/stats/service"
)

// Ports declares the cross module dependencies stats consumes
type Ports struct {
	// Admin guards the dashboard
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

	svc statssvc.Service
}

// New constructs a stats module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("stats"), modkit.WithPrefix("/stats")}, opts...)...)

	in, _ := b.Ports.(Ports)

	repo := statsrepo.NewPG()
	svc := statssvc.New(deps.PG, repo, deps.CH)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptStatsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		statshttp.Register(r, m.svc, in.Admin)
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

// adaptStatsPort adapts the stats service to the domain port interface
type adaptStatsPort struct{ svc statssvc.Service }

// Dashboard implements the domain ServicePort interface
func (a adaptStatsPort) Dashboard(ctx context.Context) (statsdom.Dashboard, error) {
	return a.svc.Dashboard(ctx)
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
