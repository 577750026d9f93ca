package livefeed

import (
	"context"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-hub/external/feedhttp"
	"github.com/riskibarqy/league-hub/internal/domain/feed"
	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/platform/logging"
	"github.com/riskibarqy/league-hub/internal/platform/resilience"
)

const (
	ProviderName   = "livefeed"
	defaultBaseURL = "https://api.livefeed.example/v1"
	dateLayout     = "2006-01-02"
)

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Backoff        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads candidate matches from a JSON live-score API.
type Client struct {
	baseURL string
	fetcher *feedhttp.Fetcher
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	headers := map[string]string{}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		headers["X-Api-Key"] = key
	}

	return &Client{
		baseURL: baseURL,
		logger:  logger,
		fetcher: feedhttp.New(feedhttp.Config{
			Name:           ProviderName,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			Backoff:        cfg.Backoff,
			Headers:        headers,
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
	}
}

func (c *Client) Name() string {
	return ProviderName
}

// FetchMatches returns the feed's matches as candidates. Team names and
// scores are passed through verbatim; reconciliation decides what they mean.
func (c *Client) FetchMatches(ctx context.Context, req feed.Request) ([]match.Match, error) {
	target, err := c.requestURL(req)
	if err != nil {
		return nil, err
	}

	raw, err := c.fetcher.Get(ctx, target, "application/json")
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch livefeed matches competition=%s", req.CompetitionID)
	}

	var envelope matchesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Wrap(err, "decode livefeed payload")
	}

	items := envelope.Matches
	if len(items) == 0 {
		items = envelope.Data
	}

	out := make([]match.Match, 0, len(items))
	for i, item := range items {
		m, ok := mapMatch(item)
		if !ok {
			c.logger.WarnContext(ctx, "skip livefeed match without teams", "index", i, "id", string(item.ID))
			continue
		}
		m.Source = ProviderName
		out = append(out, m)
	}

	c.logger.InfoContext(ctx, "livefeed matches fetched",
		"competition_id", req.CompetitionID,
		"received", len(items),
		"mapped", len(out),
	)
	return out, nil
}

func (c *Client) requestURL(req feed.Request) (string, error) {
	if strings.TrimSpace(req.URL) != "" {
		parsed, err := feedhttp.ValidateHTTPURL(req.URL)
		if err != nil {
			return "", err
		}
		return parsed.String(), nil
	}

	competitionID := strings.TrimSpace(req.CompetitionID)
	if competitionID == "" {
		return "", crerr.New("livefeed request needs a url or a competition id")
	}

	target := c.baseURL + "/competitions/" + url.PathEscape(competitionID) + "/matches"
	if !req.Date.IsZero() {
		target += "?" + url.Values{"date": []string{req.Date.UTC().Format(dateLayout)}}.Encode()
	}
	return target, nil
}

func mapMatch(item matchPayload) (match.Match, bool) {
	home := strings.TrimSpace(item.Home)
	away := strings.TrimSpace(item.Away)
	if home == "" || away == "" {
		return match.Match{}, false
	}

	out := match.Match{
		ID:       strings.TrimSpace(string(item.ID)),
		TeamA:    home,
		TeamB:    away,
		ScoreA:   match.Score(item.HomeScore),
		ScoreB:   match.Score(item.AwayScore),
		Status:   match.NormalizeStatus(item.Status),
		Date:     parseKickoff(item.Kickoff, item.Date),
		Time:     strings.TrimSpace(item.Time),
		Venue:    strings.TrimSpace(item.Venue),
		Matchday: item.Round,
		LineupA:  trimAll(item.Lineups.Home),
		LineupB:  trimAll(item.Lineups.Away),
	}
	if out.Matchday < 0 {
		out.Matchday = 0
	}
	if out.Time == "" && strings.TrimSpace(item.Kickoff) != "" && !out.Date.IsZero() {
		out.Time = out.Date.Format("15:04")
	}

	for _, e := range item.Events {
		eventType, err := match.ParseEventType(e.Type)
		if err != nil {
			eventType = match.EventInfo
		}
		minute := e.Minute
		if minute != nil && *minute < 0 {
			minute = nil
		}
		description := strings.TrimSpace(e.Description)
		if description == "" && eventType == match.EventInfo {
			description = strings.TrimSpace(e.Type)
		}
		out.Events = append(out.Events, match.Event{
			Minute:      minute,
			Type:        eventType,
			Description: description,
			TeamName:    strings.TrimSpace(e.Team),
			PlayerName:  strings.TrimSpace(e.Player),
			PlayerID:    strings.TrimSpace(string(e.PlayerID)),
			AssistName:  strings.TrimSpace(e.Assist),
		})
	}

	return out, true
}

func parseKickoff(kickoff, date string) time.Time {
	if value := strings.TrimSpace(kickoff); value != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04"} {
			if parsed, err := time.Parse(layout, value); err == nil {
				return parsed.UTC()
			}
		}
	}
	if value := strings.TrimSpace(date); value != "" {
		if parsed, err := time.Parse(dateLayout, value); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func trimAll(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
