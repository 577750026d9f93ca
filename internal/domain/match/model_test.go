package match

import (
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	tests := map[string]Status{
		"":            StatusScheduled,
		"NS":          StatusScheduled,
		"FT":          StatusFinished,
		"Full Time":   StatusFinished,
		" finished ":  StatusFinished,
		"IN_PLAY":     StatusLive,
		"HT":          StatusLive,
		"PST":         StatusPostponed,
		"Canceled":    StatusCancelled,
		"ABD":         StatusAbandoned,
		"Interrupted": StatusSuspended,
		"Delayed":     Status("delayed"),
	}
	for raw, want := range tests {
		if got := NormalizeStatus(raw); got != want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score     Score
		goals     int
		numeric   bool
		annotated bool
		walkover  bool
	}{
		{score: "", numeric: false},
		{score: "2", goals: 2, numeric: true},
		{score: " 10 ", goals: 10, numeric: true},
		{score: "-1", annotated: true},
		{score: "3 (w/o)", annotated: true, walkover: true},
		{score: "W/O", annotated: true, walkover: true},
		{score: "0 awd", annotated: true, walkover: true},
		{score: "3-0 WO", annotated: true, walkover: true},
		{score: "2*", annotated: true},
		{score: "two", annotated: true},
	}
	for _, tc := range tests {
		goals, ok := tc.score.Goals()
		if ok != tc.numeric || goals != tc.goals {
			t.Fatalf("Score(%q).Goals() = %d,%t want %d,%t", tc.score, goals, ok, tc.goals, tc.numeric)
		}
		if got := tc.score.IsAnnotated(); got != tc.annotated {
			t.Fatalf("Score(%q).IsAnnotated() = %t", tc.score, got)
		}
		if got := tc.score.IsWalkover(); got != tc.walkover {
			t.Fatalf("Score(%q).IsWalkover() = %t", tc.score, got)
		}
	}
}

func TestMatch_IsResult(t *testing.T) {
	t.Parallel()

	finished := Match{TeamA: "A", TeamB: "B", ScoreA: "1", ScoreB: "0", Status: "FT"}
	if !finished.IsResult() {
		t.Fatalf("expected finished scored match to be a result")
	}

	walkover := Match{TeamA: "A", TeamB: "B", ScoreA: "3 (w/o)", ScoreB: "0", Status: StatusFinished}
	if !walkover.IsResult() {
		t.Fatalf("expected annotated finished match to still be a result")
	}
	if _, _, ok := walkover.Numeric(); ok {
		t.Fatalf("annotated score must not be numeric")
	}

	scheduled := Match{TeamA: "A", TeamB: "B", Status: StatusScheduled}
	if scheduled.IsResult() {
		t.Fatalf("scheduled match is not a result")
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	a := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Fatalf("expected same day")
	}
	if SameDay(a, c) {
		t.Fatalf("expected different days")
	}
	if SameDay(a, time.Time{}) {
		t.Fatalf("zero date never matches a real date")
	}
}

func TestParseEventType(t *testing.T) {
	t.Parallel()

	tests := map[string]EventType{
		"Goal":        EventGoal,
		"yellow_card": EventYellowCard,
		"Yellow Card": EventYellowCard,
		"RED":         EventRedCard,
		"sub":         EventSubstitution,
		"":            EventInfo,
	}
	for raw, want := range tests {
		got, err := ParseEventType(raw)
		if err != nil || got != want {
			t.Fatalf("ParseEventType(%q) = %q,%v want %q", raw, got, err, want)
		}
	}

	if _, err := ParseEventType("corner"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
