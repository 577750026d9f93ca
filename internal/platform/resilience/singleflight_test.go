package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_SharesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	leader := make(chan any, 1)
	go func() {
		val, _, _ := g.Do("competition:swz", func() (any, error) {
			calls.Add(1)
			close(started)
			<-release
			return "table", nil
		})
		leader <- val
	}()
	<-started

	var wg sync.WaitGroup
	var sharedCount atomic.Int32
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err, shared := g.Do("competition:swz", func() (any, error) {
				calls.Add(1)
				return "table", nil
			})
			if err != nil || val != "table" {
				t.Errorf("unexpected result %v %v", val, err)
			}
			if shared {
				sharedCount.Add(1)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := <-leader; got != "table" {
		t.Fatalf("leader got %v", got)
	}
	if int(calls.Load())+int(sharedCount.Load()) != 4 {
		t.Fatalf("every caller should either run or share: calls=%d shared=%d", calls.Load(), sharedCount.Load())
	}
	if sharedCount.Load() == 0 {
		t.Fatalf("expected joiners to share the in-flight call")
	}
}

func TestSingleFlight_SequentialCallsAreNotShared(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	for i := 0; i < 2; i++ {
		_, _, shared := g.Do("k", func() (any, error) { return i, nil })
		if shared {
			t.Fatalf("call %d should not be shared", i)
		}
	}
}

func TestSingleFlight_ForgetStartsFreshCall(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	release := make(chan struct{})
	started := make(chan struct{})

	done := make(chan any, 1)
	go func() {
		val, _, _ := g.Do("k", func() (any, error) {
			close(started)
			<-release
			return "stale", nil
		})
		done <- val
	}()
	<-started

	g.Forget("k")
	val, err, shared := g.Do("k", func() (any, error) { return "fresh", nil })
	if err != nil || val != "fresh" || shared {
		t.Fatalf("expected a fresh unshared call, got %v %v %v", val, err, shared)
	}

	close(release)
	if got := <-done; got != "stale" {
		t.Fatalf("leader should still see its own result, got %v", got)
	}
}
