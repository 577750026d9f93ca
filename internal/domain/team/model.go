package team

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/league-hub/internal/domain/player"
)

// Team is a club as listed in one competition. Name is the identity used for
// matching before normalization.
type Team struct {
	ID      string
	Name    string
	Crest   string
	Players []player.Player
}

func (t Team) DisplayName() string {
	return t.Name
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	seen := make(map[string]struct{}, len(t.Players))
	for _, p := range t.Players {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("team %s: %w", t.ID, err)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("team %s: duplicate player id %s", t.ID, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return nil
}

// Clone deep-copies the roster.
func (t Team) Clone() Team {
	out := t
	out.Players = make([]player.Player, len(t.Players))
	for i, p := range t.Players {
		out.Players[i] = p.Clone()
	}
	return out
}

// CloneAll deep-copies every team.
func CloneAll(teams []Team) []Team {
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = t.Clone()
	}
	return out
}

// PlayerByID returns the roster entry with id.
func (t Team) PlayerByID(id string) (player.Player, int, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return player.Player{}, -1, false
	}
	for i, p := range t.Players {
		if p.ID == id {
			return p, i, true
		}
	}
	return player.Player{}, -1, false
}
