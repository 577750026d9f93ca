package match

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
	StatusPostponed Status = "postponed"
	StatusCancelled Status = "cancelled"
	StatusAbandoned Status = "abandoned"
	StatusSuspended Status = "suspended"
)

// Match is either a fixture or a result; Status tells them apart.
// TeamA is the home side and TeamB the away side, both as free text.
type Match struct {
	ID            string
	CompetitionID string
	TeamA         string
	TeamB         string
	ScoreA        Score
	ScoreB        Score
	Status        Status
	Date          time.Time
	Time          string
	Venue         string
	Matchday      int
	Events        []Event
	LineupA       []string
	LineupB       []string
	Source        string
}

func NormalizeStatus(value string) Status {
	status := strings.ToLower(strings.TrimSpace(value))
	switch strings.ReplaceAll(strings.ReplaceAll(status, "_", "-"), " ", "-") {
	case "", "ns", "tbd", "not-started", "scheduled", "fixture":
		return StatusScheduled
	case "live", "in-play", "inplay", "ht", "1h", "2h", "et", "half-time":
		return StatusLive
	case "finished", "ft", "aet", "pen", "full-time", "result", "played":
		return StatusFinished
	case "postponed", "pst":
		return StatusPostponed
	case "cancelled", "canceled", "canc":
		return StatusCancelled
	case "abandoned", "abd":
		return StatusAbandoned
	case "suspended", "susp", "int", "interrupted":
		return StatusSuspended
	default:
		return Status(status)
	}
}

func (s Status) IsFinished() bool {
	return NormalizeStatus(string(s)) == StatusFinished
}

func (s Status) IsLive() bool {
	return NormalizeStatus(string(s)) == StatusLive
}

// IsClosed reports statuses that will never be played as scheduled.
func (s Status) IsClosed() bool {
	switch NormalizeStatus(string(s)) {
	case StatusCancelled, StatusAbandoned:
		return true
	default:
		return false
	}
}

// Numeric returns both scores when each is a plain integer.
func (m Match) Numeric() (int, int, bool) {
	a, okA := m.ScoreA.Goals()
	b, okB := m.ScoreB.Goals()
	if !okA || !okB {
		return 0, 0, false
	}
	return a, b, true
}

// HasScore reports whether both sides carry any score, numeric or annotated.
func (m Match) HasScore() bool {
	return !m.ScoreA.IsEmpty() && !m.ScoreB.IsEmpty()
}

// IsResult reports whether the match belongs in the results log rather than
// the fixture list.
func (m Match) IsResult() bool {
	switch NormalizeStatus(string(m.Status)) {
	case StatusFinished, StatusAbandoned:
		return m.HasScore()
	default:
		return false
	}
}

// SameDay compares calendar dates in UTC.
func SameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return a.IsZero() && b.IsZero()
	}
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.TeamA) == "" || strings.TrimSpace(m.TeamB) == "" {
		return fmt.Errorf("match teams are required")
	}
	if m.Matchday < 0 {
		return fmt.Errorf("match matchday must not be negative")
	}
	for i, e := range m.Events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// Clone copies the slices so the result can be changed independently.
func (m Match) Clone() Match {
	out := m
	out.Events = append([]Event(nil), m.Events...)
	out.LineupA = append([]string(nil), m.LineupA...)
	out.LineupB = append([]string(nil), m.LineupB...)
	return out
}
