package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-hub/internal/domain/competition"
	"github.com/riskibarqy/league-hub/internal/domain/match"
)

var ErrNothingSelected = errors.New("no reviewed matches selected")

// Commit merges the selected items of batch into the competition through a
// single repo.Update. The match log and derived standings and stats are
// written together; nothing is written when any step fails. A competition
// that moved past batch.BaseVersion yields competition.ErrConflict.
func Commit(ctx context.Context, repo competition.Repository, batch Batch, newID func() (string, error)) (competition.Competition, error) {
	selected := Selected(batch.Items)
	if len(selected) == 0 {
		return competition.Competition{}, ErrNothingSelected
	}

	return repo.Update(ctx, batch.CompetitionID, func(current competition.Competition) (competition.Competition, error) {
		if current.Version != batch.BaseVersion {
			return competition.Competition{}, fmt.Errorf("%w: reviewed against version %d, stored version %d",
				competition.ErrConflict, batch.BaseVersion, current.Version)
		}

		next := current.Clone()
		for _, item := range selected {
			m := prepare(item, next.ID)
			switch {
			case item.DuplicateOf != "" && removeByID(&next, item.DuplicateOf):
				m.ID = item.DuplicateOf
			case strings.TrimSpace(m.ID) == "" || hasID(next, m.ID):
				// Provider ids are kept only while they stay unique in the log.
				id, err := newID()
				if err != nil {
					return competition.Competition{}, fmt.Errorf("generate match id: %w", err)
				}
				m.ID = id
			}
			if err := m.Validate(); err != nil {
				return competition.Competition{}, fmt.Errorf("match %s: %w", m.ID, err)
			}
			place(&next, m)
		}

		return next.Recompute(), nil
	})
}

func prepare(item ReviewedMatch, competitionID string) match.Match {
	m := item.Candidate.Clone()
	if item.TeamA != "" {
		m.TeamA = item.TeamA
	}
	if item.TeamB != "" {
		m.TeamB = item.TeamB
	}
	m.CompetitionID = competitionID
	m.Status = match.NormalizeStatus(string(m.Status))
	return m
}

func hasID(c competition.Competition, id string) bool {
	for _, m := range c.Fixtures {
		if m.ID == id {
			return true
		}
	}
	for _, m := range c.Results {
		if m.ID == id {
			return true
		}
	}
	return false
}

// removeByID drops the record with id from either list so a duplicate that
// moved from fixture to result lands in the right collection.
func removeByID(c *competition.Competition, id string) bool {
	for i := range c.Fixtures {
		if c.Fixtures[i].ID == id {
			c.Fixtures = append(c.Fixtures[:i], c.Fixtures[i+1:]...)
			return true
		}
	}
	for i := range c.Results {
		if c.Results[i].ID == id {
			c.Results = append(c.Results[:i], c.Results[i+1:]...)
			return true
		}
	}
	return false
}

func place(c *competition.Competition, m match.Match) {
	if m.IsResult() {
		c.Results = append(c.Results, m)
		return
	}
	c.Fixtures = append(c.Fixtures, m)
}
