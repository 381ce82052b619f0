package module

import (
	"time"

	"helpdesk/internal/platform/config"
)

// Options holds the admin gate configuration
type Options struct {
	Username   string
	Password   string
	SessionTTL time.Duration
}

// FromConfig reads with ADMIN_ prefix
// defaults mirror the historical shared credentials; override them anywhere
// that is not a local sandbox
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("ADMIN_")
	return Options{
		Username:   c.MayString("USERNAME", "admin"),
		Password:   c.MayString("PASSWORD", "admin123"),
		SessionTTL: c.MayDuration("SESSION_TTL", 12*time.Hour),
	}
}
