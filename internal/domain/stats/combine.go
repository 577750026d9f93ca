package stats

import (
	"strings"

	"github.com/riskibarqy/league-hub/internal/domain/names"
)

// Combine merges per-competition results computed in ModeCompetition into one
// roster. Teams and players are identified by id across competitions, or by
// normalized name when they carry none, and players keep the team they were
// first seen with. Baseline totals are added once in ModeGlobal.
func Combine(parts []Result, mode Mode) Result {
	type playerRef struct {
		team   int
		player int
	}

	out := Result{}
	teamByID := make(map[string]int)
	playerByID := make(map[string]playerRef)

	for _, part := range parts {
		out.MatchesCounted += part.MatchesCounted
		out.Unresolved = append(out.Unresolved, part.Unresolved...)

		for _, t := range part.Teams {
			teamKey := identityKey(t.ID, t.Name)
			teamIdx, ok := teamByID[teamKey]
			if !ok {
				teamIdx = len(out.Teams)
				teamByID[teamKey] = teamIdx
				shell := t
				shell.Players = nil
				out.Teams = append(out.Teams, shell)
			}

			for _, p := range t.Players {
				key := identityKey(p.ID, p.Name)
				if strings.TrimSpace(p.ID) == "" {
					key = teamKey + "/" + key
				}
				if ref, ok := playerByID[key]; ok {
					merged := &out.Teams[ref.team].Players[ref.player]
					merged.Stats = merged.Stats.Add(p.Stats)
					continue
				}
				playerByID[key] = playerRef{team: teamIdx, player: len(out.Teams[teamIdx].Players)}
				out.Teams[teamIdx].Players = append(out.Teams[teamIdx].Players, p.Clone())
			}
		}
	}

	if mode == ModeGlobal {
		for i := range out.Teams {
			for j := range out.Teams[i].Players {
				p := &out.Teams[i].Players[j]
				p.Stats = p.Baseline.Add(p.Stats)
			}
		}
	}

	return out
}

func identityKey(id, name string) string {
	if id = strings.TrimSpace(id); id != "" {
		return "id:" + id
	}
	return "name:" + names.Normalize(name)
}
