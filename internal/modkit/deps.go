// Package modkit provides module wiring and core deps
package modkit

import (
	"helpdesk/internal/modkit/repokit"
	"helpdesk/internal/platform/config"
	"helpdesk/internal/platform/logger"
	"helpdesk/internal/platform/session"
	"helpdesk/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse

	// Sessions is the admin session store, nil when the admin surface is disabled
	Sessions *session.RedisStore
}
