// @title         Helpdesk API
// @version       0.1.0
// @description   Internal help desk backend: tickets, queue, knowledge base, assistant

package main

import (
	"context"
	"time"

	"helpdesk/internal/modkit/repokit"
	"helpdesk/internal/platform/config"
	"helpdesk/internal/platform/logger"
	phttp "helpdesk/internal/platform/net/http"
	"helpdesk/internal/platform/session"
	"helpdesk/internal/platform/store"

	"helpdesk/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	rdCfg := root.Prefix("SERVICE_REDIS_")      // rdCfg lives under SERVICE_REDIS_*

	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres + optional CH events sink)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "helpdesk",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled: chCfg.MayBool("ENABLED", false),
				URL:     chCfg.MayString("DBURL", ""),
				Role:    "api",
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when a backend is unreachable
	repokit.MustGuard(context.Background(), st)

	// admin sessions live in redis
	sessions, err := session.NewRedisStore(
		rdCfg.MustString("URL"),
		rdCfg.MayDuration("SESSION_TTL", 12*time.Hour),
	)
	if err != nil {
		l.Panic().Err(err).Msg("session store failed")
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close session store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Sessions:       sessions,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
