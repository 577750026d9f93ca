package reconcile

import (
	"fmt"

	"github.com/riskibarqy/league-hub/internal/domain/match"
)

type Classification string

const (
	ClassificationNew       Classification = "new"
	ClassificationDuplicate Classification = "duplicate"
	ClassificationError     Classification = "error"
)

const warnAnnotatedScore = "annotated score: excluded from standings"

// ReviewedMatch is one candidate with its classification. TeamA and TeamB
// hold the resolved official names and are empty when a side is unmapped.
type ReviewedMatch struct {
	Candidate      match.Match
	TeamA          string
	TeamB          string
	Classification Classification
	Selected       bool
	Reason         string
	// DuplicateOf is the id of the stored record the candidate matches.
	DuplicateOf string
	Warnings    []string
}

// Existing is the current match log of the target competition.
type Existing struct {
	Fixtures []match.Match
	Results  []match.Match
}

// Batch is a pending review bound to the competition version it was built
// against.
type Batch struct {
	CompetitionID string
	BaseVersion   int64
	Items         []ReviewedMatch
}

// SetSelected returns a copy of items with the selection of index changed.
// Any item may be toggled regardless of its classification.
func SetSelected(items []ReviewedMatch, index int, selected bool) ([]ReviewedMatch, error) {
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("review item %d out of range [0,%d)", index, len(items))
	}
	out := append([]ReviewedMatch(nil), items...)
	out[index].Selected = selected
	return out, nil
}

// Selected returns the selected items in review order.
func Selected(items []ReviewedMatch) []ReviewedMatch {
	out := make([]ReviewedMatch, 0, len(items))
	for _, item := range items {
		if item.Selected {
			out = append(out, item)
		}
	}
	return out
}
