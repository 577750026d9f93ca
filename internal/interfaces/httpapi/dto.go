package httpapi

import (
	"time"

	"github.com/riskibarqy/league-hub/internal/domain/competition"
	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/domain/player"
	"github.com/riskibarqy/league-hub/internal/domain/reconcile"
	"github.com/riskibarqy/league-hub/internal/domain/standings"
	"github.com/riskibarqy/league-hub/internal/domain/stats"
	"github.com/riskibarqy/league-hub/internal/domain/team"
	"github.com/riskibarqy/league-hub/internal/usecase"
)

const dateLayout = "2006-01-02"

type competitionSummaryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Season      string    `json:"season,omitempty"`
	TeamCount   int       `json:"team_count"`
	ResultCount int       `json:"result_count"`
	Version     int64     `json:"version"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type competitionDTO struct {
	competitionSummaryDTO
	Teams    []teamDTO  `json:"teams"`
	Fixtures []matchDTO `json:"fixtures"`
	Results  []matchDTO `json:"results"`
}

type teamDTO struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Crest   string      `json:"crest,omitempty"`
	Players []playerDTO `json:"players,omitempty"`
}

type playerDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	ShirtNumber int            `json:"shirt_number,omitempty"`
	Position    string         `json:"position,omitempty"`
	Stats       playerStatsDTO `json:"stats"`
}

type playerStatsDTO struct {
	Appearances int `json:"appearances"`
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
	CleanSheets int `json:"clean_sheets"`
}

type matchDTO struct {
	ID       string     `json:"id,omitempty"`
	TeamA    string     `json:"team_a"`
	TeamB    string     `json:"team_b"`
	ScoreA   string     `json:"score_a,omitempty"`
	ScoreB   string     `json:"score_b,omitempty"`
	Status   string     `json:"status"`
	Date     string     `json:"date,omitempty"`
	Time     string     `json:"time,omitempty"`
	Venue    string     `json:"venue,omitempty"`
	Matchday int        `json:"matchday,omitempty"`
	Source   string     `json:"source,omitempty"`
	Events   []eventDTO `json:"events,omitempty"`
}

type eventDTO struct {
	Minute      *int   `json:"minute,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Team        string `json:"team,omitempty"`
	Player      string `json:"player,omitempty"`
	PlayerID    string `json:"player_id,omitempty"`
	Assist      string `json:"assist,omitempty"`
}

type standingsDTO struct {
	CompetitionID string            `json:"competition_id"`
	Counted       int               `json:"counted"`
	Rows          []standingRowDTO  `json:"rows"`
	Skipped       []skippedMatchDTO `json:"skipped,omitempty"`
}

type standingRowDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Crest          string `json:"crest,omitempty"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
	Form           string `json:"form"`
	Remaining      int    `json:"remaining"`
}

type skippedMatchDTO struct {
	Match  matchDTO `json:"match"`
	Reason string   `json:"reason"`
}

type scorerDTO struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	TeamName string `json:"team_name"`
	Crest    string `json:"crest,omitempty"`
	Goals    int    `json:"goals"`
}

type leaderDTO struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	TeamName string `json:"team_name"`
	Crest    string `json:"crest,omitempty"`
	Value    int    `json:"value"`
}

type unresolvedEventDTO struct {
	MatchID string   `json:"match_id"`
	Reason  string   `json:"reason"`
	Event   eventDTO `json:"event"`
}

type teamMatchDTO struct {
	CompetitionID   string  `json:"competition_id"`
	CompetitionName string  `json:"competition_name"`
	Tier            string  `json:"tier"`
	Team            teamDTO `json:"team"`
}

type reviewDTO struct {
	ID            string            `json:"id,omitempty"`
	CompetitionID string            `json:"competition_id"`
	Source        string            `json:"source"`
	Status        string            `json:"status"`
	Reason        string            `json:"reason,omitempty"`
	BaseVersion   int64             `json:"base_version"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []reviewedItemDTO `json:"items"`
}

type reviewedItemDTO struct {
	Index          int      `json:"index"`
	Candidate      matchDTO `json:"candidate"`
	TeamA          string   `json:"team_a,omitempty"`
	TeamB          string   `json:"team_b,omitempty"`
	Classification string   `json:"classification"`
	Selected       bool     `json:"selected"`
	Reason         string   `json:"reason,omitempty"`
	DuplicateOf    string   `json:"duplicate_of,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

func competitionSummaryToDTO(item competition.Competition) competitionSummaryDTO {
	return competitionSummaryDTO{
		ID:          item.ID,
		Name:        item.Name,
		Kind:        string(item.Kind),
		Season:      item.Season,
		TeamCount:   len(item.Teams),
		ResultCount: len(item.Results),
		Version:     item.Version,
		UpdatedAt:   item.UpdatedAt,
	}
}

func competitionToDTO(item competition.Competition) competitionDTO {
	out := competitionDTO{
		competitionSummaryDTO: competitionSummaryToDTO(item),
		Teams:                 make([]teamDTO, 0, len(item.Teams)),
		Fixtures:              matchesToDTO(item.Fixtures, false),
		Results:               matchesToDTO(item.Results, true),
	}
	for _, t := range item.Teams {
		out.Teams = append(out.Teams, teamToDTO(t, true))
	}
	return out
}

func teamToDTO(t team.Team, withPlayers bool) teamDTO {
	out := teamDTO{ID: t.ID, Name: t.Name, Crest: t.Crest}
	if !withPlayers {
		return out
	}
	for _, p := range t.Players {
		out.Players = append(out.Players, playerToDTO(p))
	}
	return out
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.ID,
		Name:        p.Name,
		ShirtNumber: p.ShirtNumber,
		Position:    string(p.Position),
		Stats: playerStatsDTO{
			Appearances: p.Stats.Appearances,
			Goals:       p.Stats.Goals,
			Assists:     p.Stats.Assists,
			YellowCards: p.Stats.YellowCards,
			RedCards:    p.Stats.RedCards,
			CleanSheets: p.Stats.CleanSheets,
		},
	}
}

func matchesToDTO(items []match.Match, withEvents bool) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item, withEvents))
	}
	return out
}

func matchToDTO(m match.Match, withEvents bool) matchDTO {
	out := matchDTO{
		ID:       m.ID,
		TeamA:    m.TeamA,
		TeamB:    m.TeamB,
		ScoreA:   string(m.ScoreA),
		ScoreB:   string(m.ScoreB),
		Status:   string(m.Status),
		Time:     m.Time,
		Venue:    m.Venue,
		Matchday: m.Matchday,
		Source:   m.Source,
	}
	if !m.Date.IsZero() {
		out.Date = m.Date.UTC().Format(dateLayout)
	}
	if withEvents {
		for _, e := range m.Events {
			out.Events = append(out.Events, eventToDTO(e))
		}
	}
	return out
}

func eventToDTO(e match.Event) eventDTO {
	return eventDTO{
		Minute:      e.Minute,
		Type:        string(e.Type),
		Description: e.Description,
		Team:        e.TeamName,
		Player:      e.PlayerName,
		PlayerID:    e.PlayerID,
		Assist:      e.AssistName,
	}
}

func standingsToDTO(competitionID string, table standings.Table) standingsDTO {
	out := standingsDTO{
		CompetitionID: competitionID,
		Counted:       table.Counted,
		Rows:          make([]standingRowDTO, 0, len(table.Rows)),
	}
	for _, row := range table.Rows {
		out.Rows = append(out.Rows, standingRowDTO{
			Position:       row.Position,
			TeamID:         row.Team.ID,
			TeamName:       row.Team.Name,
			Crest:          row.Team.Crest,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
			Form:           row.Form,
			Remaining:      row.Remaining,
		})
	}
	for _, skipped := range table.Skipped {
		out.Skipped = append(out.Skipped, skippedMatchDTO{
			Match:  matchToDTO(skipped.Match, false),
			Reason: string(skipped.Reason),
		})
	}
	return out
}

func scorersToDTO(items []stats.ScorerRecord) []scorerDTO {
	out := make([]scorerDTO, 0, len(items))
	for i, item := range items {
		out = append(out, scorerDTO{
			Rank:     i + 1,
			PlayerID: item.PlayerID,
			Name:     item.Name,
			TeamName: item.TeamName,
			Crest:    item.Crest,
			Goals:    item.Goals,
		})
	}
	return out
}

func leadersToDTO(items []stats.LeaderRecord) []leaderDTO {
	out := make([]leaderDTO, 0, len(items))
	for i, item := range items {
		out = append(out, leaderDTO{
			Rank:     i + 1,
			PlayerID: item.PlayerID,
			Name:     item.Name,
			TeamName: item.TeamName,
			Crest:    item.Crest,
			Value:    item.Value,
		})
	}
	return out
}

func unresolvedToDTO(items []stats.UnresolvedEvent) []unresolvedEventDTO {
	out := make([]unresolvedEventDTO, 0, len(items))
	for _, item := range items {
		out = append(out, unresolvedEventDTO{
			MatchID: item.MatchID,
			Reason:  string(item.Reason),
			Event:   eventToDTO(item.Event),
		})
	}
	return out
}

func teamMatchesToDTO(items []usecase.TeamMatch) []teamMatchDTO {
	out := make([]teamMatchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamMatchDTO{
			CompetitionID:   item.CompetitionID,
			CompetitionName: item.CompetitionName,
			Tier:            item.Tier,
			Team:            teamToDTO(item.Team, false),
		})
	}
	return out
}

func reviewToDTO(review usecase.Review) reviewDTO {
	out := reviewDTO{
		ID:            review.ID,
		CompetitionID: review.CompetitionID,
		Source:        review.Source,
		Status:        string(review.Status),
		Reason:        review.Reason,
		BaseVersion:   review.BaseVersion,
		CreatedAt:     review.CreatedAt,
		Items:         make([]reviewedItemDTO, 0, len(review.Items)),
	}
	for i, item := range review.Items {
		out.Items = append(out.Items, reviewedItemToDTO(i, item))
	}
	return out
}

func reviewedItemToDTO(index int, item reconcile.ReviewedMatch) reviewedItemDTO {
	return reviewedItemDTO{
		Index:          index,
		Candidate:      matchToDTO(item.Candidate, true),
		TeamA:          item.TeamA,
		TeamB:          item.TeamB,
		Classification: string(item.Classification),
		Selected:       item.Selected,
		Reason:         item.Reason,
		DuplicateOf:    item.DuplicateOf,
		Warnings:       item.Warnings,
	}
}
