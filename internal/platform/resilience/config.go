package resilience

import "time"

// BreakerConfig tunes the upstream circuit breaker.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the breaker. Zero or negative disables it.
	FailureThreshold int

	// OpenTimeout is how long the breaker stays open before allowing a
	// probe request.
	OpenTimeout time.Duration

	// HalfOpenMax caps in-flight probe requests while half-open.
	HalfOpenMax int
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 30 * time.Second
	}
	if c.HalfOpenMax <= 0 {
		c.HalfOpenMax = 1
	}
	return c
}
