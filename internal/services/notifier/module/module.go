// Package module wires the notifier worker service and exposes its ports
package module

import (
	"helpdesk/internal/adapters/pushgw"
	"helpdesk/internal/modkit"
	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/services/notifier/service"
)

// Module defines the notifier worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the notifier worker module with its ports
func New(deps modkit.Deps, opt Options) *Module {
	push := pushgw.NewClient(pushgw.Options{
		BaseURL:    opt.GatewayURL,
		ServerKey:  opt.ServerKey,
		Timeout:    opt.Timeout,
		MaxRetries: opt.MaxRetries,
		RetryBase:  opt.RetryBase,
	})

	svc := service.New(deps, service.Config{
		Interval:    opt.Interval,
		Batch:       opt.Batch,
		Concurrency: opt.Concurrency,
	}, push)

	m := &Module{deps: deps}
	m.ports = Ports{Worker: svc}
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "notifier" }

// Prefix returns the module route prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
