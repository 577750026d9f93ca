package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/league-hub/internal/domain/competition"
	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/domain/player"
	"github.com/riskibarqy/league-hub/internal/domain/team"
)

var official = []string{"Mbabane Swallows", "Manzini Wanderers", "Royal Leopards"}

func on(d int) time.Time {
	return time.Date(2026, time.April, d, 15, 0, 0, 0, time.UTC)
}

func TestReconcileClassifications(t *testing.T) {
	t.Parallel()

	existing := Existing{
		Results: []match.Match{
			{ID: "r1", TeamA: "Mbabane Swallows", TeamB: "Manzini Wanderers", ScoreA: "1", ScoreB: "0", Status: match.StatusFinished, Date: on(4)},
		},
		Fixtures: []match.Match{
			{ID: "f1", TeamA: "royal leopards fc", TeamB: "Mbabane Swallows", Status: match.StatusScheduled, Date: on(11)},
		},
	}
	candidates := []match.Match{
		{TeamA: "MBABANE SWALLOWS F.C.", TeamB: "manzini wanderers", ScoreA: "1", ScoreB: "0", Status: "FT", Date: on(4).Add(3 * time.Hour)},
		{TeamA: "Random FC", TeamB: "Royal Leopards", Date: on(5)},
		{TeamA: "Manzini Wanderers", TeamB: "Mbabane Swallows", Date: on(4)},
		{TeamA: "Royal Leopards", TeamB: "Mbabane Swallows", ScoreA: "2", ScoreB: "2", Status: match.StatusFinished, Date: on(11)},
		{TeamA: "Manzini Wanderers", TeamB: "Mbabane Swallows", Date: on(4)},
		{TeamA: "Nowhere", TeamB: "Elsewhere", Date: on(6)},
	}

	reviewed := Reconcile(candidates, existing, official)
	if len(reviewed) != len(candidates) {
		t.Fatalf("expected %d reviewed items, got %d", len(candidates), len(reviewed))
	}

	tests := []struct {
		classification Classification
		selected       bool
		duplicateOf    string
	}{
		{ClassificationDuplicate, false, "r1"},
		{ClassificationError, false, ""},
		{ClassificationNew, true, ""},
		{ClassificationDuplicate, false, "f1"},
		{ClassificationDuplicate, false, ""},
		{ClassificationError, false, ""},
	}
	for i, tc := range tests {
		got := reviewed[i]
		if got.Classification != tc.classification || got.Selected != tc.selected || got.DuplicateOf != tc.duplicateOf {
			t.Fatalf("item %d: expected %s/%v/%q, got %s/%v/%q (%s)", i,
				tc.classification, tc.selected, tc.duplicateOf,
				got.Classification, got.Selected, got.DuplicateOf, got.Reason)
		}
	}

	if reviewed[0].TeamA != "Mbabane Swallows" || reviewed[0].TeamB != "Manzini Wanderers" {
		t.Fatalf("expected resolved official names, got %q vs %q", reviewed[0].TeamA, reviewed[0].TeamB)
	}
	if reviewed[1].TeamA != "" || reviewed[1].TeamB != "Royal Leopards" {
		t.Fatalf("unexpected resolution for error item: %+v", reviewed[1])
	}
	if !strings.Contains(reviewed[1].Reason, `"Random FC"`) {
		t.Fatalf("reason should name the unmapped side, got %q", reviewed[1].Reason)
	}
	if !strings.Contains(reviewed[5].Reason, "unmapped teams") {
		t.Fatalf("reason should name both sides, got %q", reviewed[5].Reason)
	}
	if !strings.Contains(reviewed[4].Reason, "candidate 2") {
		t.Fatalf("intra-batch duplicate should point at candidate 2, got %q", reviewed[4].Reason)
	}
}

func TestReconcileWarnsOnAnnotatedScores(t *testing.T) {
	t.Parallel()

	candidates := []match.Match{
		{TeamA: "Royal Leopards", TeamB: "Manzini Wanderers", ScoreA: "3 (w/o)", ScoreB: "0", Status: match.StatusFinished, Date: on(9)},
	}

	reviewed := Reconcile(candidates, Existing{}, official)
	if reviewed[0].Classification != ClassificationNew {
		t.Fatalf("annotated scores still import, got %s", reviewed[0].Classification)
	}
	if len(reviewed[0].Warnings) != 1 || reviewed[0].Warnings[0] != warnAnnotatedScore {
		t.Fatalf("expected annotated score warning, got %v", reviewed[0].Warnings)
	}
}

func TestReconcileDoesNotMutateCandidates(t *testing.T) {
	t.Parallel()

	candidates := []match.Match{{TeamA: "mbabane swallows", TeamB: "royal leopards", Date: on(1)}}
	_ = Reconcile(candidates, Existing{}, official)
	if candidates[0].TeamA != "mbabane swallows" {
		t.Fatalf("candidate was mutated: %+v", candidates[0])
	}
}

func TestSetSelected(t *testing.T) {
	t.Parallel()

	items := []ReviewedMatch{{Classification: ClassificationError}, {Classification: ClassificationNew, Selected: true}}

	toggled, err := SetSelected(items, 0, true)
	if err != nil {
		t.Fatalf("SetSelected error: %v", err)
	}
	if !toggled[0].Selected || items[0].Selected {
		t.Fatalf("expected a toggled copy, got %+v / %+v", toggled, items)
	}
	if got := Selected(toggled); len(got) != 2 {
		t.Fatalf("expected 2 selected, got %d", len(got))
	}
	if _, err := SetSelected(items, 2, true); err == nil {
		t.Fatalf("expected out of range error")
	}
}

type stubRepository struct {
	item    competition.Competition
	updates int
}

func (s *stubRepository) List(context.Context) ([]competition.Competition, error) {
	return []competition.Competition{s.item.Clone()}, nil
}

func (s *stubRepository) GetByID(_ context.Context, id string) (competition.Competition, bool, error) {
	if id != s.item.ID {
		return competition.Competition{}, false, nil
	}
	return s.item.Clone(), true, nil
}

func (s *stubRepository) Create(context.Context, competition.Competition) error {
	return nil
}

func (s *stubRepository) Update(_ context.Context, id string, fn competition.MutateFunc) (competition.Competition, error) {
	if id != s.item.ID {
		return competition.Competition{}, competition.ErrNotFound
	}
	next, err := fn(s.item.Clone())
	if err != nil {
		return competition.Competition{}, err
	}
	next.Version = s.item.Version + 1
	s.item = next
	s.updates++
	return next.Clone(), nil
}

func seedCompetition() competition.Competition {
	return competition.Competition{
		ID:      "mtn-premier",
		Name:    "MTN Premier League",
		Version: 3,
		Teams: []team.Team{
			{ID: "sw", Name: "Mbabane Swallows", Players: []player.Player{{ID: "p1", Name: "Sabelo Ndzinisa"}}},
			{ID: "mw", Name: "Manzini Wanderers"},
			{ID: "rl", Name: "Royal Leopards"},
		},
		Fixtures: []match.Match{
			{ID: "f1", TeamA: "Royal Leopards", TeamB: "Mbabane Swallows", Status: match.StatusScheduled, Date: on(11)},
		},
	}
}

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("gen-%d", n), nil
	}
}

func TestCommitMergesAndRecomputes(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{item: seedCompetition()}
	candidates := []match.Match{
		{TeamA: "Royal Leopards FC", TeamB: "mbabane swallows", ScoreA: "0", ScoreB: "2", Status: "FT", Date: on(11),
			Events: []match.Event{{Type: match.EventGoal, TeamName: "Mbabane Swallows", PlayerName: "Sabelo Ndzinisa"}}},
		{TeamA: "Manzini Wanderers", TeamB: "Royal Leopards", Status: "NS", Date: on(18)},
		{TeamA: "Unknown XI", TeamB: "Royal Leopards", Date: on(19)},
	}
	current := repo.item
	items := Reconcile(candidates, Existing{Fixtures: current.Fixtures, Results: current.Results}, current.TeamNames())

	// Promote the fixture duplicate so the played match replaces it.
	items, err := SetSelected(items, 0, true)
	if err != nil {
		t.Fatalf("SetSelected error: %v", err)
	}

	got, err := Commit(context.Background(), repo, Batch{CompetitionID: current.ID, BaseVersion: current.Version, Items: items}, sequentialIDs())
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}

	if got.Version != 4 || repo.updates != 1 {
		t.Fatalf("expected one write producing version 4, got version %d after %d writes", got.Version, repo.updates)
	}
	if len(got.Results) != 1 || got.Results[0].ID != "f1" || got.Results[0].TeamA != "Royal Leopards" {
		t.Fatalf("expected f1 promoted to results with official names, got %+v", got.Results)
	}
	if len(got.Fixtures) != 1 || got.Fixtures[0].ID != "gen-1" || got.Fixtures[0].CompetitionID != "mtn-premier" {
		t.Fatalf("expected the new fixture with a generated id, got %+v", got.Fixtures)
	}
	if len(got.Standings) != 3 || got.Standings[0].Team.ID != "sw" || got.Standings[0].Points != 3 {
		t.Fatalf("expected recomputed standings led by Swallows, got %+v", got.Standings)
	}
	if goals := got.Teams[0].Players[0].Stats.Goals; goals != 1 {
		t.Fatalf("expected recomputed player goals, got %d", goals)
	}
}

func TestCommitRejectsStaleBatch(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{item: seedCompetition()}
	items := []ReviewedMatch{{
		Candidate:      match.Match{TeamA: "Manzini Wanderers", TeamB: "Royal Leopards", Date: on(18)},
		TeamA:          "Manzini Wanderers",
		TeamB:          "Royal Leopards",
		Classification: ClassificationNew,
		Selected:       true,
	}}

	_, err := Commit(context.Background(), repo, Batch{CompetitionID: "mtn-premier", BaseVersion: 2, Items: items}, sequentialIDs())
	if !errors.Is(err, competition.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if repo.updates != 0 || len(repo.item.Fixtures) != 1 {
		t.Fatalf("stale commit must not write, got %d writes", repo.updates)
	}
}

func TestCommitNothingSelected(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{item: seedCompetition()}
	items := []ReviewedMatch{{Classification: ClassificationDuplicate}}

	_, err := Commit(context.Background(), repo, Batch{CompetitionID: "mtn-premier", BaseVersion: 3, Items: items}, sequentialIDs())
	if !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("expected ErrNothingSelected, got %v", err)
	}
}

func TestCommitIDFailureAbortsWrite(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{item: seedCompetition()}
	items := []ReviewedMatch{{
		Candidate: match.Match{TeamA: "Manzini Wanderers", TeamB: "Royal Leopards"},
		Selected:  true,
	}}
	failing := func() (string, error) { return "", errors.New("entropy exhausted") }

	_, err := Commit(context.Background(), repo, Batch{CompetitionID: "mtn-premier", BaseVersion: 3, Items: items}, failing)
	if err == nil || !strings.Contains(err.Error(), "generate match id") {
		t.Fatalf("expected id generation error, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("expected no write, got %d", repo.updates)
	}
}

func TestCommitReplacesCollidingProviderID(t *testing.T) {
	t.Parallel()

	seed := seedCompetition()
	seed.Results = []match.Match{{
		ID: "1", TeamA: "Mbabane Swallows", TeamB: "Manzini Wanderers", ScoreA: "1", ScoreB: "0",
		Status: match.StatusFinished, Date: on(4),
		Events: []match.Event{{Type: match.EventGoal, TeamName: "Mbabane Swallows", PlayerName: "Sabelo Ndzinisa"}},
	}}
	seed = seed.Recompute()
	repo := &stubRepository{item: seed}

	candidates := []match.Match{
		{ID: "1", TeamA: "Mbabane Swallows", TeamB: "Royal Leopards", ScoreA: "2", ScoreB: "0", Status: "FT", Date: on(25),
			Events: []match.Event{{Type: match.EventGoal, TeamName: "Mbabane Swallows", PlayerName: "Sabelo Ndzinisa"}}},
		{ID: "1", TeamA: "Manzini Wanderers", TeamB: "Royal Leopards", Status: "NS", Date: on(26)},
	}
	items := Reconcile(candidates, Existing{Fixtures: seed.Fixtures, Results: seed.Results}, seed.TeamNames())
	for i, item := range items {
		if item.Classification != ClassificationNew {
			t.Fatalf("item %d: expected new, got %s", i, item.Classification)
		}
	}

	got, err := Commit(context.Background(), repo, Batch{CompetitionID: seed.ID, BaseVersion: seed.Version, Items: items}, sequentialIDs())
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}

	ids := map[string]int{}
	for _, m := range append(append([]match.Match(nil), got.Results...), got.Fixtures...) {
		ids[m.ID]++
	}
	for id, n := range ids {
		if n != 1 {
			t.Fatalf("match id %s stored %d times", id, n)
		}
	}
	if ids["gen-1"] != 1 || ids["gen-2"] != 1 {
		t.Fatalf("expected generated ids for both colliding candidates, got %v", ids)
	}

	var swallowsPlayed int
	for _, row := range got.Standings {
		if row.Team.ID == "sw" {
			swallowsPlayed = row.Played
		}
	}
	if goals := got.Teams[0].Players[0].Stats.Goals; swallowsPlayed != 2 || goals != 2 {
		t.Fatalf("standings and stats disagree: played=%d goals=%d", swallowsPlayed, goals)
	}
}
