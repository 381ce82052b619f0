package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"helpdesk/internal/modkit"
	"helpdesk/internal/modkit/module"
	"helpdesk/internal/modkit/repokit"
	"helpdesk/internal/platform/config"
	"helpdesk/internal/platform/logger"
	"helpdesk/internal/platform/store"

	notifiermod "helpdesk/internal/services/notifier/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "helpdesk",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled: chCfg.MayBool("ENABLED", false),
			URL:     chCfg.MayString("DBURL", ""),
			Role:    "notifier",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(context.Background(), st)

	var (
		fInterval = flag.Duration("interval", 5*time.Second, "poll interval for unannounced tickets")
		fBatch    = flag.Int("batch", 32, "DB claim batch size per poll")
		fConc     = flag.Int("concurrency", 4, "push send concurrency")
	)
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// export as env so the module can also read via FromConfig
	mustSetEnv("NOTIFIER_INTERVAL", fInterval.String())
	mustSetEnv("NOTIFIER_BATCH", fmt.Sprintf("%d", *fBatch))
	mustSetEnv("NOTIFIER_CONCURRENCY", fmt.Sprintf("%d", *fConc))

	opts := notifiermod.FromConfig(root)
	opts.Interval = *fInterval
	opts.Batch = *fBatch
	opts.Concurrency = *fConc

	mod := notifiermod.New(deps, opts)
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[notifiermod.Ports](mod)

	if err := ports.Worker.Run(context.Background()); err != nil {
		l.Fatal().Err(err).Msg("notifier worker failed")
	}
}
