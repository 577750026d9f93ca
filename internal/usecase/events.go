package usecase

import (
	"context"
	"time"
)

const (
	UpdateReasonImport    = "import"
	UpdateReasonRecompute = "recompute"
)

// CompetitionUpdated announces a committed change to a competition's match
// log or derived state.
type CompetitionUpdated struct {
	CompetitionID string    `json:"competition_id"`
	Version       int64     `json:"version"`
	Reason        string    `json:"reason"`
	Added         int       `json:"added"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishCompetitionUpdated(ctx context.Context, event CompetitionUpdated) error
}

type NopPublisher struct{}

func (NopPublisher) PublishCompetitionUpdated(context.Context, CompetitionUpdated) error {
	return nil
}
