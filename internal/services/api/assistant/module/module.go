// Package module wires the assistant into the API using modkit
package module

import (
	"context"
	"net/http"

	"helpdesk/internal/adapters/llm"
	modkit "helpdesk/internal/modkit"
	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/platform/net/middleware"
	str "helpdesk/internal/platform/strings"
	assistantdom "helpdesk/internal/services/api/assistant/domain"
	assistanthttp "helpdesk/internal/services/api/assistant/http"
	assistantsvc "helpdesk/internal/services/api/assistant/service"
	"helpdesk/internal/services/events"
)

// Ports declares the cross module dependencies the assistant consumes
type Ports struct {
	// Knowledge grounds replies, may be nil
	Knowledge assistantdom.Retriever
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

	svc assistantsvc.Service
}

// New constructs an assistant module with the provided dependencies and options
func New(deps modkit.Deps, opt Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("assistant"), modkit.WithPrefix("/assistant")}, opts...)...)

	in, _ := b.Ports.(Ports)

	client := llm.NewClient(llm.Options{
		APIKey:     opt.APIKey,
		BaseURL:    opt.BaseURL,
		Model:      opt.Model,
		Timeout:    opt.Timeout,
		MaxRetries: opt.MaxRetries,
	})
	rec := events.NewRecorder(deps.CH, deps.Log)
	svc := assistantsvc.New(client, in.Knowledge, rec, assistantsvc.Config{
		Temperature:      opt.Temperature,
		MaxTokens:        opt.MaxTokens,
		CompanyContext:   opt.CompanyContext,
		BreakerThreshold: uint32(max(opt.BreakerThreshold, 0)),
		BreakerTimeout:   opt.BreakerTimeout,
	})

	rl := middleware.NewRateLimiter(opt.RateEvery, opt.RateBurst)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       append(b.Mw, httpkit.RateLimit(rl)),
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptAssistantPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		assistanthttp.Register(r, m.svc)
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

// adaptAssistantPort adapts the assistant service to the domain port interface
type adaptAssistantPort struct{ svc assistantsvc.Service }

// Ask implements the domain ServicePort interface
func (a adaptAssistantPort) Ask(ctx context.Context, in assistantdom.AskInput) (assistantdom.AskResult, error) {
	return a.svc.Ask(ctx, in)
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
