package player

import (
	"fmt"
	"strings"
)

// Position represents football position categories.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

func ParsePosition(value string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "GK", "G", "GOALKEEPER", "KEEPER":
		return PositionGoalkeeper, nil
	case "DEF", "D", "DF", "DEFENDER", "CB", "LB", "RB":
		return PositionDefender, nil
	case "MID", "M", "MF", "MIDFIELDER", "CM", "DM", "AM":
		return PositionMidfielder, nil
	case "FWD", "F", "FW", "FORWARD", "ST", "STRIKER", "WINGER":
		return PositionForward, nil
	default:
		return "", fmt.Errorf("invalid player position: %s", value)
	}
}

// Stats are per-player totals.
type Stats struct {
	Appearances int
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
	CleanSheets int
}

func (s Stats) Add(other Stats) Stats {
	return Stats{
		Appearances: s.Appearances + other.Appearances,
		Goals:       s.Goals + other.Goals,
		Assists:     s.Assists + other.Assists,
		YellowCards: s.YellowCards + other.YellowCards,
		RedCards:    s.RedCards + other.RedCards,
		CleanSheets: s.CleanSheets + other.CleanSheets,
	}
}

type Transfer struct {
	Year int
	From string
	To   string
}

type Bio struct {
	Nationality string
	DateOfBirth string
	Height      string
	Biography   string
}

// Player is a rostered footballer. Baseline holds legacy totals recorded
// before match events were captured; Stats holds derived totals.
type Player struct {
	ID          string
	Name        string
	ShirtNumber int
	Position    Position
	Club        string
	Stats       Stats
	Baseline    Stats
	Bio         Bio
	Transfers   []Transfer
}

func (p Player) DisplayName() string {
	return p.Name
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Position != "" {
		if _, ok := AllPositions[p.Position]; !ok {
			return fmt.Errorf("invalid player position: %s", p.Position)
		}
	}
	if p.ShirtNumber < 0 || p.ShirtNumber > 99 {
		return fmt.Errorf("player shirt number must be between 0 and 99")
	}

	return nil
}

func (p Player) Clone() Player {
	out := p
	out.Transfers = append([]Transfer(nil), p.Transfers...)
	return out
}

// KeepsCleanSheets reports positions credited with a clean sheet.
func (p Player) KeepsCleanSheets() bool {
	return p.Position == PositionGoalkeeper || p.Position == PositionDefender
}
