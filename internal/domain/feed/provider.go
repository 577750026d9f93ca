// Package feed describes external sources of candidate matches.
package feed

import (
	"context"
	"time"

	"github.com/riskibarqy/league-hub/internal/domain/match"
)

// Request narrows what a provider fetches. Zero fields mean "no filter".
type Request struct {
	Source        string
	URL           string
	CompetitionID string
	Date          time.Time
}

// Provider fetches raw candidate matches. Team names come back as the source
// spells them; binding them to official teams is the caller's job.
type Provider interface {
	Name() string
	FetchMatches(ctx context.Context, req Request) ([]match.Match, error)
}
