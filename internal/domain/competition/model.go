package competition

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/domain/names"
	"github.com/riskibarqy/league-hub/internal/domain/standings"
	"github.com/riskibarqy/league-hub/internal/domain/team"
)

type Kind string

const (
	KindLeague   Kind = "league"
	KindCup      Kind = "cup"
	KindFriendly Kind = "friendly"
)

// Competition is the unit over which standings and statistics are computed.
// Standings and the players' Stats are derived state written together with
// the match log.
type Competition struct {
	ID        string
	Name      string
	Kind      Kind
	Season    string
	Teams     []team.Team
	Fixtures  []match.Match
	Results   []match.Match
	Standings []standings.Row
	Version   int64
	UpdatedAt time.Time
}

func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindLeague, "":
		return KindLeague, nil
	case KindCup:
		return KindCup, nil
	case KindFriendly:
		return KindFriendly, nil
	default:
		return "", fmt.Errorf("invalid competition kind %q", value)
	}
}

func (c Competition) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("competition id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("competition name is required")
	}

	keys := make(map[string]string, len(c.Teams))
	for _, t := range c.Teams {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("competition %s: %w", c.ID, err)
		}
		key := names.Normalize(t.Name)
		if other, ok := keys[key]; ok {
			return fmt.Errorf("competition %s: teams %q and %q share the name key %q", c.ID, other, t.Name, key)
		}
		keys[key] = t.Name
	}

	return nil
}

// TeamNames lists the official display names.
func (c Competition) TeamNames() []string {
	out := make([]string, 0, len(c.Teams))
	for _, t := range c.Teams {
		out = append(out, t.Name)
	}
	return out
}

// Matches returns results followed by fixtures.
func (c Competition) Matches() []match.Match {
	out := make([]match.Match, 0, len(c.Results)+len(c.Fixtures))
	out = append(out, c.Results...)
	out = append(out, c.Fixtures...)
	return out
}

// Clone deep-copies the document.
func (c Competition) Clone() Competition {
	out := c
	out.Teams = team.CloneAll(c.Teams)
	out.Fixtures = cloneMatches(c.Fixtures)
	out.Results = cloneMatches(c.Results)
	out.Standings = append([]standings.Row(nil), c.Standings...)
	return out
}

func cloneMatches(items []match.Match) []match.Match {
	out := make([]match.Match, len(items))
	for i, m := range items {
		out[i] = m.Clone()
	}
	return out
}
