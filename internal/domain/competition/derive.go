package competition

import (
	"github.com/riskibarqy/league-hub/internal/domain/standings"
	"github.com/riskibarqy/league-hub/internal/domain/stats"
)

// Recompute rebuilds every derived field from the match log: player stats in
// competition mode and the standings table. The receiver is not modified.
func (c Competition) Recompute() Competition {
	out := c.Clone()

	aggregated := stats.Aggregate(out.Matches(), out.Teams, stats.ModeCompetition)
	out.Teams = aggregated.Teams

	table := standings.Compute(out.Teams, out.Results, out.Fixtures)
	out.Standings = table.Rows

	return out
}
