package module

import (
	"time"

	"helpdesk/internal/platform/config"
)

// Options controls the notifier worker
type Options struct {
	Interval    time.Duration
	Batch       int
	Concurrency int

	GatewayURL string
	ServerKey  string
	Timeout    time.Duration
	MaxRetries int
	RetryBase  time.Duration
}

// FromConfig reads with NOTIFIER_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("NOTIFIER_")
	return Options{
		Interval:    c.MayDuration("INTERVAL", 5*time.Second),
		Batch:       c.MayInt("BATCH", 32),
		Concurrency: c.MayInt("CONCURRENCY", 4),

		GatewayURL: c.MayString("GATEWAY_URL", ""),
		ServerKey:  c.MayString("SERVER_KEY", ""),
		Timeout:    c.MayDuration("TIMEOUT", 10*time.Second),
		MaxRetries: c.MayInt("MAX_RETRIES", 3),
		RetryBase:  c.MayDuration("RETRY_BASE", 500*time.Millisecond),
	}
}
