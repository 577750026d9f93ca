// Package standings computes league tables from a raw match log.
//
// The table is rebuilt from every result on each call; nothing is patched
// incrementally, so an edited or imported log can never drift from the table.
package standings

import (
	"sort"
	"strings"

	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/domain/resolver"
	"github.com/riskibarqy/league-hub/internal/domain/team"
)

type outcome struct {
	match    match.Match
	opponent string
	result   byte
}

// Compute builds the table for teams from results. Fixtures never touch the
// counters; they only feed Row.Remaining. Inputs are not modified.
func Compute(teams []team.Team, results []match.Match, fixtures []match.Match) Table {
	rows := make([]Row, len(teams))
	for i, t := range teams {
		rows[i] = Row{Team: t}
	}

	// Rows share positions with teams.
	index := resolver.NewIndex(teams)
	resolveRow := index.LookupPosition

	table := Table{}
	outcomes := make([][]outcome, len(teams))

	for _, m := range results {
		if reason, ok := countable(m); !ok {
			table.Skipped = append(table.Skipped, SkippedMatch{Match: m, Reason: reason})
			continue
		}

		home, okHome := resolveRow(m.TeamA)
		away, okAway := resolveRow(m.TeamB)
		if !okHome || !okAway {
			table.Skipped = append(table.Skipped, SkippedMatch{Match: m, Reason: SkipUnmappedTeam})
			continue
		}
		if home == away {
			table.Skipped = append(table.Skipped, SkippedMatch{Match: m, Reason: SkipSameTeam})
			continue
		}

		goalsHome, goalsAway, _ := m.Numeric()
		applyResult(&rows[home], goalsHome, goalsAway)
		applyResult(&rows[away], goalsAway, goalsHome)
		outcomes[home] = append(outcomes[home], outcome{match: m, opponent: rows[away].Team.Name, result: resultLetter(goalsHome, goalsAway)})
		outcomes[away] = append(outcomes[away], outcome{match: m, opponent: rows[home].Team.Name, result: resultLetter(goalsAway, goalsHome)})
		table.Counted++
	}

	for _, m := range fixtures {
		if m.Status.IsFinished() || m.Status.IsClosed() {
			continue
		}
		home, okHome := resolveRow(m.TeamA)
		away, okAway := resolveRow(m.TeamB)
		if okHome {
			rows[home].Remaining++
		}
		if okAway && away != home {
			rows[away].Remaining++
		}
	}

	for i := range rows {
		rows[i].GoalDifference = rows[i].GoalsFor - rows[i].GoalsAgainst
		rows[i].Form = form(outcomes[i])
	}

	Sort(rows)
	for i := range rows {
		rows[i].Position = i + 1
	}
	table.Rows = rows

	return table
}

func countable(m match.Match) (SkipReason, bool) {
	if !m.Status.IsFinished() {
		return SkipNotFinished, false
	}
	if m.ScoreA.IsEmpty() || m.ScoreB.IsEmpty() {
		return SkipMissingScore, false
	}
	if _, _, ok := m.Numeric(); !ok {
		return SkipAnnotatedScore, false
	}
	return "", true
}

func applyResult(row *Row, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		row.Won++
		row.Points += PointsWin
	case scored == conceded:
		row.Drawn++
		row.Points += PointsDraw
	default:
		row.Lost++
	}
}

func resultLetter(scored, conceded int) byte {
	switch {
	case scored > conceded:
		return 'W'
	case scored == conceded:
		return 'D'
	default:
		return 'L'
	}
}

func form(items []outcome) string {
	if len(items) == 0 {
		return ""
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.match.Date.Equal(b.match.Date) {
			return a.match.Date.Before(b.match.Date)
		}
		if a.match.ID != b.match.ID {
			return a.match.ID < b.match.ID
		}
		if a.opponent != b.opponent {
			return a.opponent < b.opponent
		}
		return a.result < b.result
	})
	if len(items) > formLength {
		items = items[len(items)-formLength:]
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteByte(item.result)
	}
	return b.String()
}

// Sort orders rows by points, goal difference, goals for, then team name.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		if a.Team.Name != b.Team.Name {
			return a.Team.Name < b.Team.Name
		}
		return a.Team.ID < b.Team.ID
	})
}
