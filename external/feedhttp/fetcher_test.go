package feedhttp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/league-hub/internal/platform/resilience"
	"github.com/riskibarqy/league-hub/internal/usecase"
)

func TestFetcher_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Errorf("missing api key header")
		}
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	f := New(Config{
		Name:       "livefeed",
		MaxRetries: 2,
		Backoff:    -1,
		Headers:    map[string]string{"X-Api-Key": "secret"},
	})
	raw, err := f.Get(context.Background(), srv.URL+"/matches", "application/json")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(raw) != `{"ok":true}` || hits.Load() != 3 {
		t.Fatalf("unexpected result %q after %d hits", raw, hits.Load())
	}
}

func TestFetcher_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "no such competition", http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(Config{Name: "livefeed", MaxRetries: 3, Backoff: -1})
	_, err := f.Get(context.Background(), srv.URL, "application/json")
	if err == nil || IsTransient(err) {
		t.Fatalf("expected a permanent error, got %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", hits.Load())
	}
}

func TestFetcher_OpenBreakerReportsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := New(Config{
		Name:    "scorepage",
		Backoff: -1,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
		},
	})

	if _, err := f.Get(context.Background(), srv.URL, "text/html"); !IsTransient(err) {
		t.Fatalf("expected transient failure, got %v", err)
	}
	_, err := f.Get(context.Background(), srv.URL, "text/html")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("open breaker must not reach the upstream, got %d hits", hits.Load())
	}
}

func TestFetcher_TruncatesOversizedBodies(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	f := New(Config{MaxBodyBytes: 4})
	raw, err := f.Get(context.Background(), srv.URL, "")
	if err != nil || string(raw) != "0123" {
		t.Fatalf("expected truncated body, got %q %v", raw, err)
	}
}

func TestValidateHTTPURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw string
		ok  bool
	}{
		{"https://feed.example/v1/matches", true},
		{"http://localhost:8080", true},
		{"", false},
		{"ftp://feed.example", false},
		{"https://", false},
		{"::not a url", false},
	}
	for _, tc := range cases {
		_, err := ValidateHTTPURL(tc.raw)
		if (err == nil) != tc.ok {
			t.Fatalf("ValidateHTTPURL(%q) err=%v, want ok=%v", tc.raw, err, tc.ok)
		}
	}
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	got := redactURL("https://feed.example/matches?api_key=abc&date=2026-02-01")
	if got != "https://feed.example/matches?api_key=REDACTED&date=2026-02-01" {
		t.Fatalf("unexpected redacted url: %s", got)
	}
}
