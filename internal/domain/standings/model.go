package standings

import (
	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/domain/team"
)

const (
	PointsWin  = 3
	PointsDraw = 1

	formLength = 5
)

// Row is one team's computed table line.
type Row struct {
	Team           team.Team
	Position       int
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	// Form holds up to the last five outcomes, oldest first.
	Form string
	// Remaining counts fixtures still to be played.
	Remaining int
}

type SkipReason string

const (
	SkipNotFinished    SkipReason = "not_finished"
	SkipMissingScore   SkipReason = "missing_score"
	SkipAnnotatedScore SkipReason = "annotated_score"
	SkipUnmappedTeam   SkipReason = "unmapped_team"
	SkipSameTeam       SkipReason = "same_team"
)

// SkippedMatch is a result that did not contribute to the table.
type SkippedMatch struct {
	Match  match.Match
	Reason SkipReason
}

type Table struct {
	Rows    []Row
	Skipped []SkippedMatch
	// Counted is the number of results that contributed.
	Counted int
}
