// Package module wires the admin session gate into the API using modkit
package module

import (
	stdhttp "net/http"

	modkit "helpdesk/internal/modkit"
	"helpdesk/internal/modkit/httpkit"
	str "helpdesk/internal/platform/strings"
	adminhttp "helpdesk/internal/services/api/admin/http"
	adminsvc "helpdesk/internal/services/api/admin/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(stdhttp.Handler) stdhttp.Handler
	ports     any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc adminsvc.Service
}

// New constructs an admin module with the provided dependencies and options
func New(deps modkit.Deps, opt Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("admin"), modkit.WithPrefix("/admin")}, opts...)...)

	svc := adminsvc.New(deps.Sessions, adminsvc.Config{
		Username:   opt.Username,
		Password:   opt.Password,
		SessionTTL: opt.SessionTTL,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{
		Service: svc,
		Auth: httpkit.NewPortFunc(func(r *stdhttp.Request, token string) (string, error) {
			return svc.Verify(r.Context(), token)
		}),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		adminhttp.Register(r, m.svc)
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
func (m *Module) Middlewares() []func(stdhttp.Handler) stdhttp.Handler { return m.mws }
