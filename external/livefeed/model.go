package livefeed

import (
	"bytes"
	"strconv"
	"strings"
)

type matchesEnvelope struct {
	Matches []matchPayload `json:"matches"`
	Data    []matchPayload `json:"data"`
}

type matchPayload struct {
	ID        flexString     `json:"id"`
	Home      string         `json:"home"`
	Away      string         `json:"away"`
	HomeScore flexString     `json:"home_score"`
	AwayScore flexString     `json:"away_score"`
	Status    string         `json:"status"`
	Kickoff   string         `json:"kickoff"`
	Date      string         `json:"date"`
	Time      string         `json:"time"`
	Venue     string         `json:"venue"`
	Round     int            `json:"round"`
	Events    []eventPayload `json:"events"`
	Lineups   lineupsPayload `json:"lineups"`
}

type eventPayload struct {
	Minute      *int       `json:"minute"`
	Type        string     `json:"type"`
	Team        string     `json:"team"`
	Player      string     `json:"player"`
	PlayerID    flexString `json:"player_id"`
	Assist      string     `json:"assist"`
	Description string     `json:"description"`
}

type lineupsPayload struct {
	Home []string `json:"home"`
	Away []string `json:"away"`
}

// flexString accepts a JSON string, number or null. Providers send scores
// and ids either way; annotated scores only ever arrive as strings.
type flexString string

func (s *flexString) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*s = ""
		return nil
	}
	if raw[0] == '"' {
		value, err := strconv.Unquote(string(raw))
		if err != nil {
			return err
		}
		*s = flexString(strings.TrimSpace(value))
		return nil
	}
	*s = flexString(string(raw))
	return nil
}
