// Package api provides the HTTP API for the application
package api

import (
	"time"

	"helpdesk/internal/platform/config"
	"helpdesk/internal/platform/logger"
	phttp "helpdesk/internal/platform/net/http"
	"helpdesk/internal/platform/net/middleware"
	"helpdesk/internal/platform/session"
	"helpdesk/internal/platform/store"

	"helpdesk/internal/modkit"
	"helpdesk/internal/modkit/httpkit"
	"helpdesk/internal/modkit/module"
	"helpdesk/internal/modkit/swaggerkit"

	adminmod "helpdesk/internal/services/api/admin/module"
	assistantdom "helpdesk/internal/services/api/assistant/domain"
	assistantmod "helpdesk/internal/services/api/assistant/module"
	knowledgemod "helpdesk/internal/services/api/knowledge/module"
	metamod "helpdesk/internal/services/api/meta/module"
	pushmod "helpdesk/internal/services/api/push/module"
	queuemod "helpdesk/internal/services/api/queue/module"
	statsmod "helpdesk/internal/services/api/stats/module"
	ticketsmod "helpdesk/internal/services/api/tickets/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Sessions       *session.RedisStore
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log:      *opt.Logger,
		Cfg:      opt.Config,
		PG:       opt.Store.PG,
		CH:       opt.Store.CH,
		Sessions: opt.Sessions,
	}

	// admin owns the session gate every protected route group consumes
	admin := adminmod.New(deps, adminmod.FromConfig(deps.Cfg))
	auth := module.MustPortsOf[adminmod.Ports](admin).Auth

	// queue next so the submission flow can refresh the projection it reads
	queue := queuemod.New(deps)
	refresher := module.MustPortsOf[queuemod.Ports](queue).Refresher

	// the public submission surface rides behind a per ip limiter on top of
	// the service level duplicate guard
	rl := middleware.NewRateLimiter(
		opt.Config.MayDuration("TICKETS_RATE_EVERY", 200*time.Millisecond),
		opt.Config.MayInt("TICKETS_RATE_BURST", 20),
	)
	tickets := ticketsmod.New(
		deps,
		modkit.WithPorts(ticketsmod.Ports{Queue: refresher, Admin: auth}),
		modkit.WithMiddlewares(httpkit.RateLimit(rl)),
	)

	knowledge := knowledgemod.New(
		deps,
		modkit.WithPorts(knowledgemod.Ports{Admin: auth}),
	)

	// the assistant grounds its answers on the knowledge base retrieval port
	assistant := assistantmod.New(
		deps,
		assistantmod.FromConfig(deps.Cfg),
		modkit.WithPorts(assistantmod.Ports{
			Knowledge: module.MustPortsOf[assistantdom.Retriever](knowledge),
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		admin,
		queue,
		tickets,
		knowledge,
		assistant,
		pushmod.New(deps),
		statsmod.New(deps, modkit.WithPorts(statsmod.Ports{Admin: auth})),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
