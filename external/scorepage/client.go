// Package scorepage scrapes match results from HTML league tables.
package scorepage

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-hub/external/feedhttp"
	"github.com/riskibarqy/league-hub/internal/domain/feed"
	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/platform/logging"
	"github.com/riskibarqy/league-hub/internal/platform/resilience"
)

const ProviderName = "scorepage"

type ClientConfig struct {
	// PageURL is used when a request carries no URL of its own.
	PageURL        string
	Timeout        time.Duration
	MaxRetries     int
	Backoff        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	pageURL string
	fetcher *feedhttp.Fetcher
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		pageURL: strings.TrimSpace(cfg.PageURL),
		logger:  logger,
		fetcher: feedhttp.New(feedhttp.Config{
			Name:           ProviderName,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			Backoff:        cfg.Backoff,
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
	}
}

func (c *Client) Name() string {
	return ProviderName
}

// FetchMatches downloads the page and parses its results tables. A non-zero
// request date keeps only matches played that day.
func (c *Client) FetchMatches(ctx context.Context, req feed.Request) ([]match.Match, error) {
	target := strings.TrimSpace(req.URL)
	if target == "" {
		target = c.pageURL
	}
	parsed, err := feedhttp.ValidateHTTPURL(target)
	if err != nil {
		return nil, err
	}

	raw, err := c.fetcher.Get(ctx, parsed.String(), "text/html")
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch scorepage competition=%s", req.CompetitionID)
	}

	items, err := ParseResultsPage(raw)
	if err != nil {
		return nil, err
	}

	out := items[:0]
	for _, item := range items {
		if !req.Date.IsZero() && !item.Date.IsZero() && !match.SameDay(item.Date, req.Date) {
			continue
		}
		item.Source = ProviderName
		out = append(out, item)
	}

	c.logger.InfoContext(ctx, "scorepage matches parsed",
		"competition_id", req.CompetitionID,
		"parsed", len(items),
		"kept", len(out),
	)
	return out, nil
}
