package memory

import (
	"time"

	"github.com/riskibarqy/league-hub/internal/domain/competition"
	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/domain/player"
	"github.com/riskibarqy/league-hub/internal/domain/team"
)

const (
	CompetitionIDPremierLeague = "swz-premier-league-2025"
	CompetitionIDIngwenyamaCup = "swz-ingwenyama-cup-2025"
)

// SeedCompetitions returns the demo data used when no database is configured.
// Derived state is computed so reads match what an import would have written.
func SeedCompetitions() []competition.Competition {
	teams := SeedTeams()

	league := competition.Competition{
		ID:       CompetitionIDPremierLeague,
		Name:     "Premier League of Eswatini",
		Kind:     competition.KindLeague,
		Season:   "2025/2026",
		Teams:    teams,
		Results:  seedLeagueResults(),
		Fixtures: seedLeagueFixtures(),
		Version:  1,
	}

	cup := competition.Competition{
		ID:      CompetitionIDIngwenyamaCup,
		Name:    "Ingwenyama Cup",
		Kind:    competition.KindCup,
		Season:  "2025",
		Teams:   team.CloneAll(teams[:4]),
		Results: seedCupResults(),
		Version: 1,
	}

	return []competition.Competition{league.Recompute(), cup.Recompute()}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "swz-royal-leopards", Name: "Royal Leopards FC", Players: []player.Player{
			{ID: "rl-gk-01", Name: "Sandanezwe Mathabela", ShirtNumber: 1, Position: player.PositionGoalkeeper},
			{ID: "rl-def-01", Name: "Sifiso Mabila", ShirtNumber: 4, Position: player.PositionDefender},
			{ID: "rl-fwd-01", Name: "Sabelo Ndzinisa", ShirtNumber: 9, Position: player.PositionForward, Baseline: player.Stats{Appearances: 88, Goals: 41}},
		}},
		{ID: "swz-mbabane-swallows", Name: "Mbabane Swallows", Players: []player.Player{
			{ID: "ms-gk-01", Name: "Mphile Tsabedze", ShirtNumber: 16, Position: player.PositionGoalkeeper},
			{ID: "ms-mid-01", Name: "Wonder Nhleko", ShirtNumber: 8, Position: player.PositionMidfielder},
			{ID: "ms-fwd-01", Name: "Justice Figuareido", ShirtNumber: 11, Position: player.PositionForward},
		}},
		{ID: "swz-young-buffaloes", Name: "Young Buffaloes FC", Players: []player.Player{
			{ID: "yb-def-01", Name: "Njabulo Ndlovu", ShirtNumber: 5, Position: player.PositionDefender},
			{ID: "yb-fwd-01", Name: "Khethokwakhe Masuku", ShirtNumber: 10, Position: player.PositionForward},
		}},
		{ID: "swz-green-mamba", Name: "Green Mamba", Players: []player.Player{
			{ID: "gm-mid-01", Name: "Phiwa Nhlengetfwa", ShirtNumber: 7, Position: player.PositionMidfielder},
		}},
		{ID: "swz-manzini-wanderers", Name: "Manzini Wanderers", Players: []player.Player{
			{ID: "mw-fwd-01", Name: "Sibusiso Dlamini", ShirtNumber: 14, Position: player.PositionForward},
		}},
		{ID: "swz-mbabane-highlanders", Name: "Mbabane Highlanders Football Club"},
	}
}

func seedLeagueResults() []match.Match {
	return []match.Match{
		{
			ID: "pl-2025-001", CompetitionID: CompetitionIDPremierLeague, Matchday: 1,
			TeamA: "Royal Leopards", TeamB: "Mbabane Swallows", ScoreA: "2", ScoreB: "1",
			Status: match.StatusFinished, Date: seedDay(2025, time.September, 13), Venue: "Mavuso Sports Centre",
			LineupA: []string{"Sandanezwe Mathabela", "Sifiso Mabila", "Sabelo Ndzinisa"},
			LineupB: []string{"Mphile Tsabedze", "Wonder Nhleko", "Justice Figuareido"},
			Events: []match.Event{
				{Minute: seedMinute(23), Type: match.EventGoal, TeamName: "Royal Leopards", PlayerName: "Sabelo Ndzinisa"},
				{Minute: seedMinute(51), Type: match.EventGoal, TeamName: "Mbabane Swallows", PlayerName: "Justice Figuareido", AssistName: "Wonder Nhleko"},
				{Minute: seedMinute(77), Type: match.EventGoal, TeamName: "Royal Leopards", PlayerName: "S. Ndzinisa"},
				{Minute: seedMinute(80), Type: match.EventYellowCard, TeamName: "Mbabane Swallows", PlayerName: "Wonder Nhleko"},
			},
		},
		{
			ID: "pl-2025-002", CompetitionID: CompetitionIDPremierLeague, Matchday: 1,
			TeamA: "Young Buffaloes", TeamB: "Green Mamba", ScoreA: "0", ScoreB: "0",
			Status: match.StatusFinished, Date: seedDay(2025, time.September, 14), Venue: "Mavuso Sports Centre",
			LineupA: []string{"Njabulo Ndlovu", "Khethokwakhe Masuku"},
		},
		{
			ID: "pl-2025-003", CompetitionID: CompetitionIDPremierLeague, Matchday: 2,
			TeamA: "Manzini Wanderers", TeamB: "Mbabane Highlanders", ScoreA: "3 (w/o)", ScoreB: "0",
			Status: match.StatusFinished, Date: seedDay(2025, time.September, 20),
		},
		{
			ID: "pl-2025-004", CompetitionID: CompetitionIDPremierLeague, Matchday: 2,
			TeamA: "Green Mamba FC", TeamB: "Royal Leopards F.C.", ScoreA: "1", ScoreB: "1",
			Status: match.StatusFinished, Date: seedDay(2025, time.September, 21), Venue: "Somhlolo National Stadium",
			Events: []match.Event{
				{Minute: seedMinute(12), Type: match.EventGoal, TeamName: "Green Mamba", PlayerName: "Phiwa Nhlengetfwa"},
				{Minute: seedMinute(64), Type: match.EventGoal, TeamName: "Royal Leopards", PlayerName: "Sabelo Ndzinisa"},
				{Minute: seedMinute(88), Type: match.EventRedCard, TeamName: "Royal Leopards", PlayerName: "Sifiso Mabila"},
			},
		},
	}
}

func seedLeagueFixtures() []match.Match {
	return []match.Match{
		{
			ID: "pl-2025-005", CompetitionID: CompetitionIDPremierLeague, Matchday: 3,
			TeamA: "Mbabane Swallows", TeamB: "Young Buffaloes",
			Status: match.StatusScheduled, Date: seedDay(2025, time.October, 4), Time: "15:00", Venue: "Somhlolo National Stadium",
		},
		{
			ID: "pl-2025-006", CompetitionID: CompetitionIDPremierLeague, Matchday: 3,
			TeamA: "Mbabane Highlanders", TeamB: "Royal Leopards",
			Status: match.StatusPostponed, Date: seedDay(2025, time.October, 5),
		},
	}
}

func seedCupResults() []match.Match {
	return []match.Match{
		{
			ID: "cup-2025-qf1", CompetitionID: CompetitionIDIngwenyamaCup,
			TeamA: "Mbabane Swallows", TeamB: "Royal Leopards", ScoreA: "0", ScoreB: "2",
			Status: match.StatusFinished, Date: seedDay(2025, time.August, 2), Venue: "Somhlolo National Stadium",
			Events: []match.Event{
				{Minute: seedMinute(30), Type: match.EventGoal, TeamName: "Royal Leopards", PlayerName: "Sabelo Ndzinisa"},
				{Minute: seedMinute(71), Type: match.EventGoal, TeamName: "Royal Leopards", PlayerName: "Sabelo Ndzinisa"},
			},
		},
	}
}

func seedDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 13, 0, 0, 0, time.UTC)
}

func seedMinute(v int) *int {
	return &v
}
