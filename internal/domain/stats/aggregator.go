// Package stats aggregates per-player totals from match event logs.
package stats

import (
	"strings"

	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/domain/player"
	"github.com/riskibarqy/league-hub/internal/domain/resolver"
	"github.com/riskibarqy/league-hub/internal/domain/team"
)

type slot struct {
	team   int
	player int
}

// aggregator holds per-call state only.
type aggregator struct {
	teams   []team.Team
	teamIx  *resolver.Index[team.Team]
	players []*resolver.Index[player.Player]
	tally   [][]player.Stats
	result  Result
}

// Aggregate walks every event of the finished and live matches and credits
// resolved players. The roster is not modified.
func Aggregate(matches []match.Match, roster []team.Team, mode Mode) Result {
	teams := team.CloneAll(roster)
	agg := &aggregator{
		teams:   teams,
		teamIx:  resolver.NewIndex(teams),
		players: make([]*resolver.Index[player.Player], len(teams)),
		tally:   make([][]player.Stats, len(teams)),
	}
	for i, t := range teams {
		agg.tally[i] = make([]player.Stats, len(t.Players))
	}

	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if id := strings.TrimSpace(m.ID); id != "" {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
		}
		if !m.Status.IsFinished() && !m.Status.IsLive() {
			continue
		}
		agg.addMatch(m)
		agg.result.MatchesCounted++
	}

	for i := range teams {
		for j := range teams[i].Players {
			derived := agg.tally[i][j]
			if mode == ModeGlobal {
				derived = teams[i].Players[j].Baseline.Add(derived)
			}
			teams[i].Players[j].Stats = derived
		}
	}
	agg.result.Teams = teams

	return agg.result
}

func (a *aggregator) addMatch(m match.Match) {
	home, homeOK := a.resolveTeam(m.TeamA)
	away, awayOK := a.resolveTeam(m.TeamB)
	appeared := make(map[slot]struct{})

	a.addLineup(m, m.TeamA, home, homeOK, m.LineupA, appeared)
	a.addLineup(m, m.TeamB, away, awayOK, m.LineupB, appeared)

	for _, e := range m.Events {
		if !e.CreditsPlayer() {
			continue
		}

		teamIdx, playerIdx, reason, ok := a.resolveEventPlayer(e, m, home, homeOK, away, awayOK)
		if !ok {
			a.unresolved(m.ID, e, reason)
			continue
		}

		stats := &a.tally[teamIdx][playerIdx]
		switch e.Type {
		case match.EventGoal:
			stats.Goals++
			if name := strings.TrimSpace(e.AssistName); name != "" {
				if assist, ok := a.resolvePlayer(teamIdx, name); ok {
					a.tally[teamIdx][assist].Assists++
					appeared[slot{team: teamIdx, player: assist}] = struct{}{}
				} else {
					a.unresolved(m.ID, e, ReasonUnknownAssist)
				}
			}
		case match.EventYellowCard:
			stats.YellowCards++
		case match.EventRedCard:
			stats.RedCards++
		}
		appeared[slot{team: teamIdx, player: playerIdx}] = struct{}{}
	}

	for s := range appeared {
		a.tally[s.team][s.player].Appearances++
	}

	if !m.Status.IsFinished() {
		return
	}
	goalsHome, goalsAway, ok := m.Numeric()
	if !ok {
		return
	}
	if homeOK && goalsAway == 0 {
		a.creditCleanSheets(home, appeared)
	}
	if awayOK && goalsHome == 0 && (!homeOK || away != home) {
		a.creditCleanSheets(away, appeared)
	}
}

func (a *aggregator) addLineup(m match.Match, teamName string, teamIdx int, teamOK bool, lineup []string, appeared map[slot]struct{}) {
	for _, name := range lineup {
		if strings.TrimSpace(name) == "" {
			continue
		}
		entry := match.Event{Type: match.EventInfo, TeamName: teamName, PlayerName: name}
		if !teamOK {
			a.unresolved(m.ID, entry, ReasonUnknownTeam)
			continue
		}
		playerIdx, ok := a.resolvePlayer(teamIdx, name)
		if !ok {
			a.unresolved(m.ID, entry, ReasonUnknownLineupPlayer)
			continue
		}
		appeared[slot{team: teamIdx, player: playerIdx}] = struct{}{}
	}
}

// resolveEventPlayer binds an event to a roster slot. Events without a team
// name are tried against both sides of the match and credited only when
// exactly one side knows the player.
func (a *aggregator) resolveEventPlayer(e match.Event, m match.Match, home int, homeOK bool, away int, awayOK bool) (int, int, UnresolvedReason, bool) {
	if strings.TrimSpace(e.TeamName) == "" {
		var found []slot
		for _, side := range []struct {
			idx int
			ok  bool
		}{{home, homeOK}, {away, awayOK}} {
			if !side.ok {
				continue
			}
			if playerIdx, ok := a.findPlayer(side.idx, e); ok {
				found = append(found, slot{team: side.idx, player: playerIdx})
			}
		}
		if len(found) != 1 || (homeOK && awayOK && home == away) {
			return 0, 0, ReasonMissingTeam, false
		}
		return found[0].team, found[0].player, "", true
	}

	teamIdx, ok := a.resolveTeam(e.TeamName)
	if !ok {
		return 0, 0, ReasonUnknownTeam, false
	}
	playerIdx, ok := a.findPlayer(teamIdx, e)
	if !ok {
		return 0, 0, ReasonUnknownPlayer, false
	}
	return teamIdx, playerIdx, "", true
}

// findPlayer prefers an upstream player id when it exists on the team and
// falls back to the free-text name.
func (a *aggregator) findPlayer(teamIdx int, e match.Event) (int, bool) {
	if _, idx, ok := a.teams[teamIdx].PlayerByID(e.PlayerID); ok {
		return idx, true
	}
	return a.resolvePlayer(teamIdx, e.PlayerName)
}

func (a *aggregator) resolveTeam(name string) (int, bool) {
	return a.teamIx.LookupPosition(name)
}

func (a *aggregator) resolvePlayer(teamIdx int, name string) (int, bool) {
	if a.players[teamIdx] == nil {
		a.players[teamIdx] = resolver.NewIndex(a.teams[teamIdx].Players)
	}
	return a.players[teamIdx].LookupPosition(name)
}

func (a *aggregator) creditCleanSheets(teamIdx int, appeared map[slot]struct{}) {
	for s := range appeared {
		if s.team != teamIdx {
			continue
		}
		if a.teams[teamIdx].Players[s.player].KeepsCleanSheets() {
			a.tally[teamIdx][s.player].CleanSheets++
		}
	}
}

func (a *aggregator) unresolved(matchID string, e match.Event, reason UnresolvedReason) {
	a.result.Unresolved = append(a.result.Unresolved, UnresolvedEvent{
		MatchID: matchID,
		Event:   e,
		Reason:  reason,
	})
}
