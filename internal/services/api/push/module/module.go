// Package module wires push registration into the API using modkit
package module

import (
	"context"
	"net/http"

	modkit "helpdesk/internal/modkit"
	"helpdesk/internal/modkit/httpkit"
	str "helpdesk/internal/platform/strings"
	pushdom "helpdesk/internal/services/api/push/domain"
	pushhttp "helpdesk/internal/services/api/push/http"
	pushrepo "helpdesk/internal/services/api/push/repo"
	pushsvc "helpdesk/internal/services/api/push/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc pushsvc.Service
}

// New constructs a push module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("push"), modkit.WithPrefix("/push")}, opts...)...)

	repo := pushrepo.NewPG()
	svc := pushsvc.New(deps.PG, repo)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptPushPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		pushhttp.Register(r, m.svc)
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

// adaptPushPort adapts the push service to the domain port interface
type adaptPushPort struct{ svc pushsvc.Service }

// Register implements the domain ServicePort interface
func (a adaptPushPort) Register(ctx context.Context, in pushdom.RegisterInput) (pushdom.Registration, error) {
	return a.svc.Register(ctx, in)
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
