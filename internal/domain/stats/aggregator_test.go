package stats

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/domain/player"
	"github.com/riskibarqy/league-hub/internal/domain/team"
)

func roster() []team.Team {
	return []team.Team{
		{
			ID:    "swallows",
			Name:  "Mbabane Swallows",
			Crest: "swallows.png",
			Players: []player.Player{
				{ID: "x", Name: "Sabelo Ndzinisa", Position: player.PositionForward, Baseline: player.Stats{Goals: 40, Appearances: 90}},
				{ID: "k", Name: "Khanyakwezwe Shabalala", Position: player.PositionGoalkeeper},
				{ID: "d", Name: "Mxolisi Lukhele", Position: player.PositionDefender},
			},
		},
		{
			ID:   "wanderers",
			Name: "Manzini Wanderers",
			Players: []player.Player{
				{ID: "y", Name: "Felix Badenhorst", Position: player.PositionForward},
				{ID: "z", Name: "Tony Tsabedze", Position: player.PositionMidfielder},
			},
		},
	}
}

func goal(teamName, playerName string) match.Event {
	return match.Event{Type: match.EventGoal, TeamName: teamName, PlayerName: playerName}
}

func finished(id string, scoreA, scoreB int, events ...match.Event) match.Match {
	return match.Match{
		ID:     id,
		TeamA:  "Mbabane Swallows",
		TeamB:  "Manzini Wanderers",
		ScoreA: match.IntScore(scoreA),
		ScoreB: match.IntScore(scoreB),
		Status: match.StatusFinished,
		Events: events,
	}
}

func playerStats(t *testing.T, result Result, playerID string) player.Stats {
	t.Helper()
	for _, tm := range result.Teams {
		for _, p := range tm.Players {
			if p.ID == playerID {
				return p.Stats
			}
		}
	}
	t.Fatalf("player %s not found", playerID)
	return player.Stats{}
}

func TestAggregateTopScorersScenario(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		finished("m1", 2, 1,
			goal("Mbabane Swallows", "Sabelo Ndzinisa"),
			goal("MBABANE SWALLOWS FC", "sabelo ndzinisa"),
			goal("Manzini Wanderers", "Felix Badenhorst"),
		),
		finished("m2", 1, 0, goal("Mbabane Swallows", "S. Ndzinisa")),
	}

	result := Aggregate(matches, roster(), ModeCompetition)
	scorers := TopScorers(result.Teams, 10)

	got := make([]string, 0, len(scorers))
	for _, s := range scorers {
		got = append(got, s.PlayerID)
	}
	// "S. Ndzinisa" does not resolve: the shorter key is not contained in the full name.
	if len(result.Unresolved) != 1 || result.Unresolved[0].Reason != ReasonUnknownPlayer {
		t.Fatalf("expected one unknown player, got %+v", result.Unresolved)
	}
	if !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("unexpected scorers: %+v", scorers)
	}
	if scorers[0].Goals != 2 || scorers[1].Goals != 1 {
		t.Fatalf("unexpected goal counts: %+v", scorers)
	}
	if scorers[0].TeamName != "Mbabane Swallows" || scorers[0].Crest != "swallows.png" {
		t.Fatalf("unexpected team fields: %+v", scorers[0])
	}
}

func TestAggregateThreeAndOne(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		finished("m1", 2, 0, goal("Mbabane Swallows", "Sabelo Ndzinisa"), goal("Mbabane Swallows", "Sabelo Ndzinisa")),
		finished("m2", 1, 1, goal("Mbabane Swallows", "Sabelo Ndzinisa"), goal("Manzini Wanderers", "Felix Badenhorst")),
	}

	result := Aggregate(matches, roster(), ModeCompetition)
	scorers := TopScorers(result.Teams, 0)
	if len(scorers) != 2 {
		t.Fatalf("expected 2 scorers, got %+v", scorers)
	}
	if scorers[0].PlayerID != "x" || scorers[0].Goals != 3 || scorers[1].PlayerID != "y" || scorers[1].Goals != 1 {
		t.Fatalf("expected [x:3 y:1], got %+v", scorers)
	}
	if len(result.Unresolved) != 0 {
		t.Fatalf("expected nothing unresolved, got %+v", result.Unresolved)
	}
}

func TestAggregateModes(t *testing.T) {
	t.Parallel()

	matches := []match.Match{finished("m1", 1, 0, goal("Mbabane Swallows", "Sabelo Ndzinisa"))}

	competition := Aggregate(matches, roster(), ModeCompetition)
	if got := playerStats(t, competition, "x"); got.Goals != 1 || got.Appearances != 1 {
		t.Fatalf("competition mode should ignore baseline, got %+v", got)
	}

	global := Aggregate(matches, roster(), ModeGlobal)
	if got := playerStats(t, global, "x"); got.Goals != 41 || got.Appearances != 91 {
		t.Fatalf("global mode should add baseline, got %+v", got)
	}
}

func TestAggregateDoesNotMutateRoster(t *testing.T) {
	t.Parallel()

	input := roster()
	before := team.CloneAll(input)
	matches := []match.Match{finished("m1", 1, 0, goal("Mbabane Swallows", "Sabelo Ndzinisa"))}

	_ = Aggregate(matches, input, ModeGlobal)
	if !reflect.DeepEqual(input, before) {
		t.Fatalf("roster was mutated")
	}
}

func TestAggregateUnresolvedEvents(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		finished("m1", 1, 0,
			match.Event{Type: match.EventYellowCard, TeamName: "Royal Leopards", PlayerName: "Someone"},
			match.Event{Type: match.EventRedCard, TeamName: "Manzini Wanderers", PlayerName: "Nobody Known"},
			match.Event{Type: match.EventGoal, PlayerName: "Unknown Striker"},
			match.Event{Type: match.EventGoal, TeamName: "Mbabane Swallows", PlayerName: "Sabelo Ndzinisa", AssistName: "Ghost Winger"},
			match.Event{Type: match.EventInfo, Description: "kick-off delayed"},
		),
	}

	result := Aggregate(matches, roster(), ModeCompetition)

	var reasons []UnresolvedReason
	for _, item := range result.Unresolved {
		if item.MatchID != "m1" {
			t.Fatalf("expected match id m1, got %q", item.MatchID)
		}
		reasons = append(reasons, item.Reason)
	}
	want := []UnresolvedReason{ReasonUnknownTeam, ReasonUnknownPlayer, ReasonMissingTeam, ReasonUnknownAssist}
	if !reflect.DeepEqual(reasons, want) {
		t.Fatalf("expected %v, got %v", want, reasons)
	}
	if got := playerStats(t, result, "x"); got.Goals != 1 || got.Assists != 0 {
		t.Fatalf("scorer should still be credited, got %+v", got)
	}
}

func TestAggregateEventWithoutTeamUsesMatchSides(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		finished("m1", 0, 1, match.Event{Type: match.EventGoal, PlayerName: "Felix Badenhorst", AssistName: "Tony Tsabedze"}),
	}

	result := Aggregate(matches, roster(), ModeCompetition)
	if len(result.Unresolved) != 0 {
		t.Fatalf("expected nothing unresolved, got %+v", result.Unresolved)
	}
	if got := playerStats(t, result, "y"); got.Goals != 1 {
		t.Fatalf("expected goal for y, got %+v", got)
	}
	if got := playerStats(t, result, "z"); got.Assists != 1 || got.Appearances != 1 {
		t.Fatalf("expected assist and appearance for z, got %+v", got)
	}
}

func TestAggregatePrefersPlayerID(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		finished("m1", 1, 0, match.Event{Type: match.EventGoal, TeamName: "Mbabane Swallows", PlayerName: "Typo Name", PlayerID: "d"}),
	}

	result := Aggregate(matches, roster(), ModeCompetition)
	if got := playerStats(t, result, "d"); got.Goals != 1 {
		t.Fatalf("expected goal credited by id, got %+v", got)
	}
}

func TestAggregateAppearancesAndCleanSheets(t *testing.T) {
	t.Parallel()

	m1 := finished("m1", 1, 0, goal("Mbabane Swallows", "Sabelo Ndzinisa"))
	m1.LineupA = []string{"Khanyakwezwe Shabalala", "Mxolisi Lukhele", "Sabelo Ndzinisa", "Trialist"}
	m1.LineupB = []string{"Felix Badenhorst"}

	m2 := finished("m2", 0, 2)
	m2.LineupA = []string{"Khanyakwezwe Shabalala"}

	live := match.Match{ID: "m3", TeamA: "Mbabane Swallows", TeamB: "Manzini Wanderers", Status: match.StatusLive, LineupA: []string{"Khanyakwezwe Shabalala"}}
	scheduled := match.Match{ID: "m4", TeamA: "Mbabane Swallows", TeamB: "Manzini Wanderers", Status: match.StatusScheduled, LineupA: []string{"Khanyakwezwe Shabalala"}}

	result := Aggregate([]match.Match{m1, m2, live, scheduled, m1}, roster(), ModeCompetition)

	if result.MatchesCounted != 3 {
		t.Fatalf("expected 3 counted matches, got %d", result.MatchesCounted)
	}
	if got := playerStats(t, result, "k"); got.Appearances != 3 || got.CleanSheets != 1 {
		t.Fatalf("unexpected keeper stats: %+v", got)
	}
	if got := playerStats(t, result, "d"); got.Appearances != 1 || got.CleanSheets != 1 {
		t.Fatalf("unexpected defender stats: %+v", got)
	}
	if got := playerStats(t, result, "x"); got.Appearances != 1 || got.CleanSheets != 0 || got.Goals != 1 {
		t.Fatalf("forwards never keep clean sheets: %+v", got)
	}
	if got := playerStats(t, result, "y"); got.Appearances != 1 {
		t.Fatalf("unexpected away stats: %+v", got)
	}
	if len(result.Unresolved) != 1 || result.Unresolved[0].Reason != ReasonUnknownLineupPlayer {
		t.Fatalf("expected the trialist to be reported, got %+v", result.Unresolved)
	}
}

func TestLeaderboard(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: "a", Name: "Alpha", Players: []player.Player{
			{ID: "2", Name: "Bongani", Stats: player.Stats{YellowCards: 2}},
			{ID: "1", Name: "Ayanda", Stats: player.Stats{YellowCards: 2}},
			{ID: "3", Name: "Cebo"},
		}},
		{ID: "b", Name: "Beta", Players: []player.Player{
			{ID: "4", Name: "Dumisa", Stats: player.Stats{YellowCards: 5}},
		}},
	}

	got := Leaderboard(teams, MetricYellowCards, 2)
	if len(got) != 2 || got[0].PlayerID != "4" || got[1].PlayerID != "1" {
		t.Fatalf("unexpected leaderboard: %+v", got)
	}

	all := Leaderboard(teams, MetricYellowCards, 0)
	if len(all) != 3 {
		t.Fatalf("zero-valued players should be omitted, got %+v", all)
	}
}

func TestParseMetricAndMode(t *testing.T) {
	t.Parallel()

	if metric, err := ParseMetric("Yellow_Cards"); err != nil || metric != MetricYellowCards {
		t.Fatalf("unexpected metric %q err %v", metric, err)
	}
	if _, err := ParseMetric("corners"); err == nil {
		t.Fatalf("expected error for unknown metric")
	}
	if mode, err := ParseMode(""); err != nil || mode != ModeCompetition {
		t.Fatalf("unexpected default mode %q err %v", mode, err)
	}
	if _, err := ParseMode("season"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestCombineAddsBaselineOnce(t *testing.T) {
	t.Parallel()

	league := Aggregate([]match.Match{
		finished("l1", 2, 0, goal("Mbabane Swallows", "Sabelo Ndzinisa"), goal("Mbabane Swallows", "Sabelo Ndzinisa")),
	}, roster(), ModeCompetition)
	cup := Aggregate([]match.Match{
		finished("c1", 1, 0, goal("Mbabane Swallows", "Sabelo Ndzinisa")),
	}, roster(), ModeCompetition)

	global := Combine([]Result{league, cup}, ModeGlobal)
	if global.MatchesCounted != 2 {
		t.Fatalf("expected 2 matches, got %d", global.MatchesCounted)
	}
	if len(global.Teams) != 2 {
		t.Fatalf("teams should merge by id, got %d", len(global.Teams))
	}
	if got := playerStats(t, global, "x"); got.Goals != 43 || got.Appearances != 92 {
		t.Fatalf("expected baseline 40+3 goals and 90+2 apps, got %+v", got)
	}

	scorers := TopScorers(Combine([]Result{league, cup}, ModeCompetition).Teams, 1)
	if len(scorers) != 1 || scorers[0].Goals != 3 {
		t.Fatalf("competition mode should ignore baseline, got %+v", scorers)
	}
}

func TestAggregateRosterWithoutIDs(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{Name: "Mbabane Swallows", Players: []player.Player{
			{Name: "Sabelo Ndzinisa", Position: player.PositionForward},
			{Name: "Khanyakwezwe Shabalala", Position: player.PositionGoalkeeper},
		}},
		{Name: "Manzini Wanderers", Players: []player.Player{
			{Name: "Felix Badenhorst", Position: player.PositionForward},
		}},
	}
	m := finished("m1", 1, 1,
		goal("Mbabane Swallows", "Sabelo Ndzinisa"),
		goal("Manzini Wanderers", "felix badenhorst"),
	)

	result := Aggregate([]match.Match{m}, teams, ModeCompetition)
	if len(result.Unresolved) != 0 {
		t.Fatalf("expected every event resolved by name, got %+v", result.Unresolved)
	}
	if got := result.Teams[0].Players[0].Stats.Goals; got != 1 {
		t.Fatalf("Sabelo: expected 1 goal, got %d", got)
	}
	if got := result.Teams[0].Players[1].Stats.Goals; got != 0 {
		t.Fatalf("goalkeeper must not be credited, got %d", got)
	}
	if got := result.Teams[1].Players[0].Stats.Goals; got != 1 {
		t.Fatalf("Felix: expected 1 goal, got %d", got)
	}
}

func TestCombineMergesPlayersWithoutIDsByName(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{Name: "Mbabane Swallows", Players: []player.Player{
		{Name: "Sabelo Ndzinisa"},
		{Name: "Mxolisi Lukhele"},
	}}}
	league := Aggregate([]match.Match{finished("l1", 1, 0, goal("Mbabane Swallows", "Sabelo Ndzinisa"))}, teams, ModeCompetition)
	cup := Aggregate([]match.Match{finished("c1", 1, 0, goal("Mbabane Swallows", "Mxolisi Lukhele"))}, teams, ModeCompetition)

	combined := Combine([]Result{league, cup}, ModeCompetition)
	if len(combined.Teams) != 1 || len(combined.Teams[0].Players) != 2 {
		t.Fatalf("expected one team with two players, got %+v", combined.Teams)
	}
	for _, p := range combined.Teams[0].Players {
		if p.Stats.Goals != 1 {
			t.Fatalf("%s: expected 1 goal, got %d", p.Name, p.Stats.Goals)
		}
	}
}
