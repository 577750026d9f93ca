package resilience

import (
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("upstream 503")

func TestGuard_OpensOnTransientFailures(t *testing.T) {
	guard := NewGuard("livefeed", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, func(err error) bool { return errors.Is(err, errTransient) })

	fail := func() (any, error) { return nil, errTransient }
	for i := 0; i < 2; i++ {
		if _, err := guard.Do("fixtures", fail); !errors.Is(err, errTransient) {
			t.Fatalf("call %d: expected transient error, got %v", i, err)
		}
	}
	if guard.State() != CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", guard.State())
	}

	calls := 0
	_, err := guard.Do("fixtures", func() (any, error) {
		calls++
		return "ok", nil
	})
	if !errors.Is(err, ErrCircuitOpen) || calls != 0 {
		t.Fatalf("expected short-circuit without calling upstream, got err=%v calls=%d", err, calls)
	}
}

func TestGuard_PermanentErrorsDoNotTrip(t *testing.T) {
	guard := NewGuard("scorepage", CircuitBreakerConfig{Enabled: true, FailureThreshold: 1}, func(err error) bool {
		return errors.Is(err, errTransient)
	})

	notFound := errors.New("404")
	for i := 0; i < 3; i++ {
		if _, err := guard.Do("page", func() (any, error) { return nil, notFound }); !errors.Is(err, notFound) {
			t.Fatalf("expected the permanent error, got %v", err)
		}
	}
	if guard.State() != CircuitStateClosed {
		t.Fatalf("permanent errors must not open the breaker, got %s", guard.State())
	}
}

func TestGuard_DisabledAlwaysCalls(t *testing.T) {
	guard := NewGuard("livefeed", CircuitBreakerConfig{Enabled: false, FailureThreshold: 1}, nil)

	for i := 0; i < 3; i++ {
		_, _ = guard.Do("k", func() (any, error) { return nil, errTransient })
	}
	out, err := guard.Do("k", func() (any, error) { return "ok", nil })
	if err != nil || out != "ok" {
		t.Fatalf("disabled guard should pass through, got %v %v", out, err)
	}
}
