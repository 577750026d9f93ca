package resilience

import "fmt"

// Guard fronts one upstream dependency. Concurrent calls with the same key
// share a single execution, and errors accepted by isFailure count against
// the circuit breaker. Other errors count as a healthy round trip.
type Guard struct {
	name      string
	breaker   *CircuitBreaker
	enabled   bool
	flight    SingleFlight
	isFailure func(error) bool
}

func NewGuard(name string, cfg CircuitBreakerConfig, isFailure func(error) bool) *Guard {
	cfg = NormalizeCircuitBreakerConfig(cfg)
	if isFailure == nil {
		isFailure = func(err error) bool { return err != nil }
	}
	return &Guard{
		name:      name,
		breaker:   NewCircuitBreaker(cfg),
		enabled:   cfg.Enabled,
		isFailure: isFailure,
	}
}

// Do runs fn unless the breaker is open, in which case the returned error
// wraps ErrCircuitOpen.
func (g *Guard) Do(key string, fn func() (any, error)) (any, error) {
	if g.enabled {
		if err := g.breaker.Allow(); err != nil {
			return nil, fmt.Errorf("%s: %w", g.name, err)
		}
	}

	out, err, _ := g.flight.Do(key, func() (any, error) {
		value, callErr := fn()
		if g.enabled {
			if callErr != nil && g.isFailure(callErr) {
				g.breaker.RecordFailure()
			} else {
				g.breaker.RecordSuccess()
			}
		}
		return value, callErr
	})
	return out, err
}

// OnStateChange forwards breaker transitions to fn.
func (g *Guard) OnStateChange(fn StateChangeFunc) {
	g.breaker.OnStateChange(fn)
}

func (g *Guard) State() CircuitState {
	if !g.enabled {
		return CircuitStateClosed
	}
	return g.breaker.State()
}
