package match

import (
	"fmt"
	"strings"
)

type EventType string

const (
	EventGoal         EventType = "goal"
	EventYellowCard   EventType = "yellow-card"
	EventRedCard      EventType = "red-card"
	EventSubstitution EventType = "substitution"
	EventInfo         EventType = "info"
)

// Event is one timeline entry. PlayerName and AssistName are free text;
// PlayerID, when present, is still checked against the roster.
type Event struct {
	Minute      *int
	Type        EventType
	Description string
	TeamName    string
	PlayerName  string
	PlayerID    string
	AssistName  string
}

func ParseEventType(value string) (EventType, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "goal", "penalty", "penalty-goal":
		return EventGoal, nil
	case "yellow-card", "yellow", "yellowcard", "booking":
		return EventYellowCard, nil
	case "red-card", "red", "redcard", "second-yellow", "yellow-red", "yellowred":
		return EventRedCard, nil
	case "substitution", "sub", "subst":
		return EventSubstitution, nil
	case "info", "var", "note", "":
		return EventInfo, nil
	default:
		return "", fmt.Errorf("unknown event type %q", value)
	}
}

func (e Event) Validate() error {
	switch e.Type {
	case EventGoal, EventYellowCard, EventRedCard, EventSubstitution, EventInfo:
	default:
		return fmt.Errorf("invalid event type %q", e.Type)
	}
	if e.Minute != nil && *e.Minute < 0 {
		return fmt.Errorf("event minute must not be negative")
	}
	return nil
}

// CreditsPlayer reports event types that attribute something to a player.
func (e Event) CreditsPlayer() bool {
	switch e.Type {
	case EventGoal, EventYellowCard, EventRedCard, EventSubstitution:
		return true
	default:
		return false
	}
}
