package resilience

import "time"

// CircuitBreakerConfig is filled by config.Load, which owns the defaults.
// The tags are checked there together with the rest of the service config.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int           `validate:"min=1"`
	OpenTimeout      time.Duration `validate:"gt=0"`
	HalfOpenMaxReq   int           `validate:"min=1"`
}

const minOpenTimeout = time.Second

// withFloors keeps a hand-built config usable: zero or negative values are
// raised to the smallest setting that still lets the breaker make progress.
func (c CircuitBreakerConfig) withFloors() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 1
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = minOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = 1
	}
	return c
}
