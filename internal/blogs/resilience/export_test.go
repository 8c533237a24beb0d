package resilience

import "time"

// NewCircuitBreakerWithClock позволяет тестам управлять временем.
func NewCircuitBreakerWithClock(name string, config CircuitBreakerConfig, now func() time.Time) *CircuitBreaker {
	return newCircuitBreaker(name, config, now)
}
