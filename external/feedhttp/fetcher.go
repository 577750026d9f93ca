package feedhttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-hub/internal/platform/logging"
	"github.com/riskibarqy/league-hub/internal/platform/resilience"
	"github.com/riskibarqy/league-hub/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultBackoff      = time.Second
	defaultMaxBodyBytes = 4 << 20
	defaultUserAgent    = "league-hub/1.0"
)

// ErrTransient marks failures worth retrying: transport errors, 429 and 5xx.
var ErrTransient = crerr.New("feed transient failure")

type Config struct {
	Name           string
	HTTPClient     *http.Client
	Timeout        time.Duration
	MaxRetries     int
	// Backoff is multiplied by the attempt number; negative disables waiting.
	Backoff        time.Duration
	MaxBodyBytes   int64
	UserAgent      string
	Headers        map[string]string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Fetcher performs GET requests against one upstream feed with retries and a
// circuit breaker shared by every caller of the fetcher.
type Fetcher struct {
	name         string
	httpClient   *http.Client
	maxRetries   int
	backoff      time.Duration
	maxBodyBytes int64
	userAgent    string
	headers      map[string]string
	logger       *logging.Logger
	guard        *resilience.Guard
}

func New(cfg Config) *Fetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "feed"
	}
	backoff := cfg.Backoff
	if backoff < 0 {
		backoff = 0
	} else if backoff == 0 {
		backoff = defaultBackoff
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	guard := resilience.NewGuard(name, cfg.CircuitBreaker, IsTransient)
	guard.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("feed circuit breaker state changed", "feed", name, "from", from, "to", to)
	})

	return &Fetcher{
		name:         name,
		httpClient:   httpClient,
		maxRetries:   maxRetries,
		backoff:      backoff,
		maxBodyBytes: maxBody,
		userAgent:    userAgent,
		headers:      cfg.Headers,
		logger:       logger,
		guard:        guard,
	}
}

// Get returns the response body of a 2xx answer. An open breaker yields an
// error wrapping usecase.ErrDependencyUnavailable.
func (f *Fetcher) Get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	if _, err := ValidateHTTPURL(rawURL); err != nil {
		return nil, err
	}

	out, err := f.guard.Do(accept+" "+rawURL, func() (any, error) {
		return f.execute(ctx, rawURL, accept)
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			f.logger.WarnContext(ctx, "feed circuit breaker rejected request", "feed", f.name, "state", f.guard.State())
			return nil, fmt.Errorf("%w: %s is temporarily unavailable", usecase.ErrDependencyUnavailable, f.name)
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, crerr.Newf("unexpected %s payload type %T", f.name, out)
	}
	return raw, nil
}

func (f *Fetcher) execute(ctx context.Context, rawURL, accept string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		raw, err := f.once(ctx, rawURL, accept)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !IsTransient(err) || attempt == f.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * f.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	f.logger.WarnContext(ctx, "feed request failed", "feed", f.name, "url", redactURL(rawURL), "error", lastErr)
	return nil, lastErr
}

func (f *Fetcher) once(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	req.Header.Set("User-Agent", f.userAgent)
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, crerr.Mark(crerr.Wrapf(err, "%s send request", f.name), ErrTransient)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, f.maxBodyBytes)); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "%s read response body", f.name), ErrTransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := crerr.Newf("%s status=%d body=%s", f.name, resp.StatusCode, abbreviateBody(buf.B))
		if isRetryableStatus(resp.StatusCode) {
			return nil, crerr.Mark(statusErr, ErrTransient)
		}
		return nil, statusErr
	}

	return append([]byte(nil), buf.B...), nil
}

func IsTransient(err error) bool {
	return err != nil && crerr.Is(err, ErrTransient)
}

// ValidateHTTPURL accepts absolute http(s) URLs with a host.
func ValidateHTTPURL(raw string) (*url.URL, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return nil, crerr.New("feed url is required")
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return nil, crerr.Newf("%q has empty host", candidate)
	}
	return parsed, nil
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	for _, key := range []string{"api_key", "api_token", "token"} {
		if query.Has(key) {
			query.Set(key, "REDACTED")
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
