// Package module wires the queue projector into the API using modkit
package module

import (
	"context"
	"net/http"

	modkit "helpdesk/internal/modkit"
	"helpdesk/internal/modkit/httpkit"
	str "helpdesk/internal/platform/strings"
	queuehttp "helpdesk/internal/services/api/queue/http"
	queuerepo "helpdesk/internal/services/api/queue/repo"
	queuesvc "helpdesk/internal/services/api/queue/service"
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

	svc *queuesvc.Svc
}

// New constructs a queue module with the provided dependencies and options
// it starts the background poll for the process lifetime
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("queue"), modkit.WithPrefix("/queue")}, opts...)...)

	repo := queuerepo.NewPG()
	svc := queuesvc.New(deps.PG, repo)

	every := deps.Cfg.MayDuration("QUEUE_REFRESH_INTERVAL", queuesvc.DefaultRefreshInterval)
	go func() { _ = svc.Run(context.Background(), every) }()

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Projector: svc, Refresher: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		queuehttp.Register(r, m.svc)
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
