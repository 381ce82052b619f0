package module

import (
	"time"

	"helpdesk/internal/platform/config"
)

// Options controls the assistant pipeline and its outbound client
type Options struct {
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float64
	MaxTokens      int
	CompanyContext string

	Timeout    time.Duration
	MaxRetries int

	// per client rate limit on the ask endpoint
	RateEvery time.Duration
	RateBurst int

	// circuit breaker around the completion client
	BreakerThreshold int
	BreakerTimeout   time.Duration
}

// FromConfig reads with ASSISTANT_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("ASSISTANT_")
	return Options{
		APIKey:         c.MayString("API_KEY", ""),
		BaseURL:        c.MayString("BASE_URL", ""),
		Model:          c.MayString("MODEL", ""),
		Temperature:    c.MayFloat64("TEMPERATURE", 0.4),
		MaxTokens:      c.MayInt("MAX_TOKENS", 500),
		CompanyContext: c.MayString("COMPANY_CONTEXT", ""),

		Timeout:    c.MayDuration("TIMEOUT", 30*time.Second),
		MaxRetries: c.MayInt("MAX_RETRIES", 3),

		RateEvery: c.MayDuration("RATE_EVERY", 2*time.Second),
		RateBurst: c.MayInt("RATE_BURST", 5),

		BreakerThreshold: c.MayInt("BREAKER_THRESHOLD", 5),
		BreakerTimeout:   c.MayDuration("BREAKER_TIMEOUT", 30*time.Second),
	}
}
