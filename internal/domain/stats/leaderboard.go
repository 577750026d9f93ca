package stats

import (
	"sort"

	"github.com/riskibarqy/league-hub/internal/domain/player"
	"github.com/riskibarqy/league-hub/internal/domain/team"
)

// TopScorers flattens the roster into a golden boot table ordered by goals
// desc then name. Players without goals are left out; limit <= 0 keeps all.
func TopScorers(teams []team.Team, limit int) []ScorerRecord {
	leaders := Leaderboard(teams, MetricGoals, limit)
	out := make([]ScorerRecord, 0, len(leaders))
	for _, item := range leaders {
		out = append(out, ScorerRecord{
			PlayerID: item.PlayerID,
			Name:     item.Name,
			TeamName: item.TeamName,
			Crest:    item.Crest,
			Goals:    item.Value,
		})
	}
	return out
}

// Leaderboard ranks players by metric using the same ordering as TopScorers.
func Leaderboard(teams []team.Team, metric Metric, limit int) []LeaderRecord {
	out := make([]LeaderRecord, 0)
	for _, t := range teams {
		for _, p := range t.Players {
			value := metricValue(p.Stats, metric)
			if value <= 0 {
				continue
			}
			out = append(out, LeaderRecord{
				PlayerID: p.ID,
				Name:     p.Name,
				TeamName: t.Name,
				Crest:    t.Crest,
				Value:    value,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func metricValue(s player.Stats, metric Metric) int {
	switch metric {
	case MetricGoals:
		return s.Goals
	case MetricAssists:
		return s.Assists
	case MetricYellowCards:
		return s.YellowCards
	case MetricRedCards:
		return s.RedCards
	case MetricAppearances:
		return s.Appearances
	case MetricCleanSheets:
		return s.CleanSheets
	default:
		return 0
	}
}
