package postgres

import (
	"time"
)

type competitionTableModel struct {
	ID        string     `db:"public_id"`
	Name      string     `db:"name"`
	Kind      string     `db:"kind"`
	Season    string     `db:"season"`
	Document  []byte     `db:"document"`
	Version   int64      `db:"version"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type competitionInsertModel struct {
	ID       string `db:"public_id"`
	Name     string `db:"name"`
	Kind     string `db:"kind"`
	Season   string `db:"season"`
	Document []byte `db:"document"`
	Version  int64  `db:"version"`
}

type competitionUpdateModel struct {
	Name     string `db:"name"`
	Kind     string `db:"kind"`
	Season   string `db:"season"`
	Document []byte `db:"document"`
}

// competitionDocument is the JSONB body of a competition row. Field names are
// part of the stored format.
type competitionDocument struct {
	Teams     []teamDocument        `json:"teams"`
	Fixtures  []matchDocument       `json:"fixtures"`
	Results   []matchDocument       `json:"results"`
	Standings []standingRowDocument `json:"standings,omitempty"`
}

type teamDocument struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Crest   string           `json:"crest,omitempty"`
	Players []playerDocument `json:"players,omitempty"`
}

type playerDocument struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	ShirtNumber int                `json:"shirt_number,omitempty"`
	Position    string             `json:"position,omitempty"`
	Club        string             `json:"club,omitempty"`
	Stats       statsDocument      `json:"stats"`
	Baseline    statsDocument      `json:"baseline"`
	Bio         bioDocument        `json:"bio"`
	Transfers   []transferDocument `json:"transfers,omitempty"`
}

type statsDocument struct {
	Appearances int `json:"appearances"`
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
	CleanSheets int `json:"clean_sheets"`
}

type bioDocument struct {
	Nationality string `json:"nationality,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Height      string `json:"height,omitempty"`
	Biography   string `json:"biography,omitempty"`
}

type transferDocument struct {
	Year int    `json:"year"`
	From string `json:"from"`
	To   string `json:"to"`
}

type matchDocument struct {
	ID            string          `json:"id"`
	CompetitionID string          `json:"competition_id,omitempty"`
	TeamA         string          `json:"team_a"`
	TeamB         string          `json:"team_b"`
	ScoreA        string          `json:"score_a,omitempty"`
	ScoreB        string          `json:"score_b,omitempty"`
	Status        string          `json:"status"`
	Date          *time.Time      `json:"date,omitempty"`
	Time          string          `json:"time,omitempty"`
	Venue         string          `json:"venue,omitempty"`
	Matchday      int             `json:"matchday,omitempty"`
	Events        []eventDocument `json:"events,omitempty"`
	LineupA       []string        `json:"lineup_a,omitempty"`
	LineupB       []string        `json:"lineup_b,omitempty"`
	Source        string          `json:"source,omitempty"`
}

type eventDocument struct {
	Minute      *int   `json:"minute,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	TeamName    string `json:"team_name,omitempty"`
	PlayerName  string `json:"player_name,omitempty"`
	PlayerID    string `json:"player_id,omitempty"`
	AssistName  string `json:"assist_name,omitempty"`
}

type standingRowDocument struct {
	TeamID         string `json:"team_id"`
	Position       int    `json:"position"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
	Form           string `json:"form,omitempty"`
	Remaining      int    `json:"remaining"`
}
