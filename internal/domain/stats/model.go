package stats

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/domain/team"
)

// Mode selects whether legacy baseline totals are carried forward.
type Mode string

const (
	// ModeCompetition derives totals purely from the supplied events.
	ModeCompetition Mode = "competition"
	// ModeGlobal adds event-derived totals to each player's Baseline.
	ModeGlobal Mode = "global"
)

func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeCompetition, "":
		return ModeCompetition, nil
	case ModeGlobal:
		return ModeGlobal, nil
	default:
		return "", fmt.Errorf("invalid stats mode %q", value)
	}
}

type UnresolvedReason string

const (
	ReasonMissingTeam         UnresolvedReason = "missing_team"
	ReasonUnknownTeam         UnresolvedReason = "unknown_team"
	ReasonUnknownPlayer       UnresolvedReason = "unknown_player"
	ReasonUnknownAssist       UnresolvedReason = "unknown_assist"
	ReasonUnknownLineupPlayer UnresolvedReason = "unknown_lineup_player"
)

// UnresolvedEvent is an event, or lineup entry, that could not be credited to
// a rostered player. Lineup entries are reported as synthetic info events.
type UnresolvedEvent struct {
	MatchID string
	Event   match.Event
	Reason  UnresolvedReason
}

type Result struct {
	// Teams is a deep copy of the roster with Player.Stats replaced.
	Teams          []team.Team
	Unresolved     []UnresolvedEvent
	MatchesCounted int
}

// ScorerRecord is one golden boot line.
type ScorerRecord struct {
	PlayerID string
	Name     string
	TeamName string
	Crest    string
	Goals    int
}

type Metric string

const (
	MetricGoals       Metric = "goals"
	MetricAssists     Metric = "assists"
	MetricYellowCards Metric = "yellow-cards"
	MetricRedCards    Metric = "red-cards"
	MetricAppearances Metric = "appearances"
	MetricCleanSheets Metric = "clean-sheets"
)

func ParseMetric(value string) (Metric, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.ReplaceAll(key, "_", "-")
	switch Metric(key) {
	case MetricGoals, MetricAssists, MetricYellowCards, MetricRedCards, MetricAppearances, MetricCleanSheets:
		return Metric(key), nil
	case "yellow":
		return MetricYellowCards, nil
	case "red":
		return MetricRedCards, nil
	default:
		return "", fmt.Errorf("invalid leaderboard metric %q", value)
	}
}

type LeaderRecord struct {
	PlayerID string
	Name     string
	TeamName string
	Crest    string
	Value    int
}
