package postgres

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-hub/internal/domain/competition"
	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/domain/player"
	"github.com/riskibarqy/league-hub/internal/domain/standings"
	"github.com/riskibarqy/league-hub/internal/domain/team"
)

func encodeCompetitionDocument(item competition.Competition) ([]byte, error) {
	doc := competitionDocument{
		Teams:     make([]teamDocument, 0, len(item.Teams)),
		Fixtures:  encodeMatches(item.Fixtures),
		Results:   encodeMatches(item.Results),
		Standings: make([]standingRowDocument, 0, len(item.Standings)),
	}
	for _, t := range item.Teams {
		doc.Teams = append(doc.Teams, encodeTeam(t))
	}
	for _, row := range item.Standings {
		doc.Standings = append(doc.Standings, standingRowDocument{
			TeamID:         row.Team.ID,
			Position:       row.Position,
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

	encoded, err := sonic.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode competition %s document: %w", item.ID, err)
	}
	return encoded, nil
}

func decodeCompetition(row competitionTableModel) (competition.Competition, error) {
	kind, err := competition.ParseKind(row.Kind)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("decode competition %s: %w", row.ID, err)
	}

	var doc competitionDocument
	if len(row.Document) > 0 {
		if err := sonic.Unmarshal(row.Document, &doc); err != nil {
			return competition.Competition{}, fmt.Errorf("decode competition %s document: %w", row.ID, err)
		}
	}

	out := competition.Competition{
		ID:        row.ID,
		Name:      row.Name,
		Kind:      kind,
		Season:    row.Season,
		Teams:     make([]team.Team, 0, len(doc.Teams)),
		Fixtures:  decodeMatches(doc.Fixtures),
		Results:   decodeMatches(doc.Results),
		Version:   row.Version,
		UpdatedAt: row.UpdatedAt,
	}
	teamsByID := make(map[string]team.Team, len(doc.Teams))
	for _, t := range doc.Teams {
		decoded := decodeTeam(t)
		out.Teams = append(out.Teams, decoded)
		teamsByID[decoded.ID] = decoded
	}

	if len(doc.Standings) > 0 {
		out.Standings = make([]standings.Row, 0, len(doc.Standings))
	}
	for _, r := range doc.Standings {
		t, ok := teamsByID[r.TeamID]
		if !ok {
			// The team was removed after the table was derived; keep the id.
			t = team.Team{ID: r.TeamID}
		}
		out.Standings = append(out.Standings, standings.Row{
			Team:           t.Clone(),
			Position:       r.Position,
			Played:         r.Played,
			Won:            r.Won,
			Drawn:          r.Drawn,
			Lost:           r.Lost,
			GoalsFor:       r.GoalsFor,
			GoalsAgainst:   r.GoalsAgainst,
			GoalDifference: r.GoalDifference,
			Points:         r.Points,
			Form:           r.Form,
			Remaining:      r.Remaining,
		})
	}

	return out, nil
}

func encodeTeam(t team.Team) teamDocument {
	out := teamDocument{ID: t.ID, Name: t.Name, Crest: t.Crest}
	for _, p := range t.Players {
		doc := playerDocument{
			ID:          p.ID,
			Name:        p.Name,
			ShirtNumber: p.ShirtNumber,
			Position:    string(p.Position),
			Club:        p.Club,
			Stats:       statsDocument(p.Stats),
			Baseline:    statsDocument(p.Baseline),
			Bio:         bioDocument(p.Bio),
		}
		for _, tr := range p.Transfers {
			doc.Transfers = append(doc.Transfers, transferDocument(tr))
		}
		out.Players = append(out.Players, doc)
	}
	return out
}

func decodeTeam(doc teamDocument) team.Team {
	out := team.Team{ID: doc.ID, Name: doc.Name, Crest: doc.Crest}
	for _, p := range doc.Players {
		decoded := player.Player{
			ID:          p.ID,
			Name:        p.Name,
			ShirtNumber: p.ShirtNumber,
			Position:    player.Position(p.Position),
			Club:        p.Club,
			Stats:       player.Stats(p.Stats),
			Baseline:    player.Stats(p.Baseline),
			Bio:         player.Bio(p.Bio),
		}
		for _, tr := range p.Transfers {
			decoded.Transfers = append(decoded.Transfers, player.Transfer(tr))
		}
		out.Players = append(out.Players, decoded)
	}
	return out
}

func encodeMatches(items []match.Match) []matchDocument {
	out := make([]matchDocument, 0, len(items))
	for _, m := range items {
		doc := matchDocument{
			ID:            m.ID,
			CompetitionID: m.CompetitionID,
			TeamA:         m.TeamA,
			TeamB:         m.TeamB,
			ScoreA:        string(m.ScoreA),
			ScoreB:        string(m.ScoreB),
			Status:        string(m.Status),
			Time:          m.Time,
			Venue:         m.Venue,
			Matchday:      m.Matchday,
			LineupA:       m.LineupA,
			LineupB:       m.LineupB,
			Source:        m.Source,
		}
		if !m.Date.IsZero() {
			date := m.Date.UTC()
			doc.Date = &date
		}
		for _, e := range m.Events {
			doc.Events = append(doc.Events, eventDocument{
				Minute:      e.Minute,
				Type:        string(e.Type),
				Description: e.Description,
				TeamName:    e.TeamName,
				PlayerName:  e.PlayerName,
				PlayerID:    e.PlayerID,
				AssistName:  e.AssistName,
			})
		}
		out = append(out, doc)
	}
	return out
}

func decodeMatches(items []matchDocument) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, doc := range items {
		m := match.Match{
			ID:            doc.ID,
			CompetitionID: doc.CompetitionID,
			TeamA:         doc.TeamA,
			TeamB:         doc.TeamB,
			ScoreA:        match.Score(doc.ScoreA),
			ScoreB:        match.Score(doc.ScoreB),
			Status:        match.NormalizeStatus(doc.Status),
			Time:          doc.Time,
			Venue:         doc.Venue,
			Matchday:      doc.Matchday,
			LineupA:       doc.LineupA,
			LineupB:       doc.LineupB,
			Source:        doc.Source,
		}
		if doc.Date != nil {
			m.Date = doc.Date.UTC()
		}
		for _, e := range doc.Events {
			eventType, err := match.ParseEventType(e.Type)
			if err != nil {
				eventType = match.EventInfo
			}
			m.Events = append(m.Events, match.Event{
				Minute:      e.Minute,
				Type:        eventType,
				Description: e.Description,
				TeamName:    e.TeamName,
				PlayerName:  e.PlayerName,
				PlayerID:    e.PlayerID,
				AssistName:  e.AssistName,
			})
		}
		out = append(out, m)
	}
	return out
}
