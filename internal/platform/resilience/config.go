package resilience

import "time"

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
	// Name labels the guarded dependency in state change callbacks.
	Name          string
	OnStateChange StateChangeFunc
}

// WithStateChangeHook returns cfg with hook running before any hook already
// configured.
func (cfg CircuitBreakerConfig) WithStateChangeHook(hook StateChangeFunc) CircuitBreakerConfig {
	if hook == nil {
		return cfg
	}
	next := cfg.OnStateChange
	cfg.OnStateChange = func(name string, from, to CircuitState) {
		hook(name, from, to)
		if next != nil {
			next(name, from, to)
		}
	}
	return cfg
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// NewCircuitBreakerFromConfig returns nil when the breaker is disabled.
func NewCircuitBreakerFromConfig(cfg CircuitBreakerConfig) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	cfg = NormalizeCircuitBreakerConfig(cfg)
	breaker := NewCircuitBreaker(cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq)
	breaker.name = cfg.Name
	breaker.onStateChange = cfg.OnStateChange
	return breaker
}
