// Package module wires tickets into the API using modkit
package module

import (
	"net/http"

	modkit "helpdesk/internal/modkit"
	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/platform/net/middleware"
	str "helpdesk/internal/platform/strings"
	ticketsdom "helpdesk/internal/services/api/tickets/domain"
	ticketshttp "helpdesk/internal/services/api/tickets/http"
	ticketsrepo "helpdesk/internal/services/api/tickets/repo"
	ticketssvc "helpdesk/internal/services/api/tickets/service"
	"helpdesk/internal/services/events"
)

// Ports declares the cross module dependencies tickets consumes
type Ports struct {
	// Queue refreshes the public projection after submissions, may be nil
	Queue ticketsdom.QueuePort

	// Admin guards the management endpoints
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

	svc ticketssvc.Service
}

// New constructs a tickets module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("tickets"), modkit.WithPrefix("/tickets")}, opts...)...)

	in, _ := b.Ports.(Ports)

	repo := ticketsrepo.NewPG()
	rec := events.NewRecorder(deps.CH, deps.Log)
	svc := ticketssvc.New(deps.PG, repo, ticketssvc.NewGuard(), in.Queue, rec)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptTicketsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ticketshttp.Register(r, m.svc, in.Admin)
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
