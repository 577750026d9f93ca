package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/league-hub/internal/domain/competition"
	"github.com/riskibarqy/league-hub/internal/domain/resolver"
	"github.com/riskibarqy/league-hub/internal/domain/standings"
	"github.com/riskibarqy/league-hub/internal/domain/stats"
	"github.com/riskibarqy/league-hub/internal/domain/team"
	"github.com/riskibarqy/league-hub/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

// TeamMatch is one hit of a cross-competition team search.
type TeamMatch struct {
	CompetitionID   string
	CompetitionName string
	Team            team.Team
	Tier            string
}

type CompetitionService struct {
	repo   competition.Repository
	logger *logging.Logger
}

func NewCompetitionService(repo competition.Repository, logger *logging.Logger) *CompetitionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CompetitionService{
		repo:   repo,
		logger: logger,
	}
}

func (s *CompetitionService) List(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	return items, nil
}

func (s *CompetitionService) Get(ctx context.Context, competitionID string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Get")
	defer span.End()

	item, err := s.load(ctx, competitionID)
	recordSpanError(span, err)
	return item, err
}

// Standings recomputes the table from the stored match log on every call.
func (s *CompetitionService) Standings(ctx context.Context, competitionID string) (standings.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Standings")
	defer span.End()

	item, err := s.load(ctx, competitionID)
	if err != nil {
		recordSpanError(span, err)
		return standings.Table{}, err
	}

	table := standings.Compute(item.Teams, item.Results, item.Fixtures)
	if len(table.Skipped) > 0 {
		s.logger.DebugContext(ctx, "standings skipped results",
			"competition_id", item.ID,
			"skipped", len(table.Skipped),
		)
	}

	return table, nil
}

func (s *CompetitionService) TopScorers(ctx context.Context, competitionID string, limit int) ([]stats.ScorerRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.TopScorers")
	defer span.End()

	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}

	item, err := s.load(ctx, competitionID)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	result := stats.Aggregate(item.Matches(), item.Teams, stats.ModeCompetition)
	return stats.TopScorers(result.Teams, limit), nil
}

func (s *CompetitionService) Leaderboard(ctx context.Context, competitionID, metric string, limit int) ([]stats.LeaderRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Leaderboard")
	defer span.End()

	parsed, err := stats.ParseMetric(metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}

	item, err := s.load(ctx, competitionID)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	result := stats.Aggregate(item.Matches(), item.Teams, stats.ModeCompetition)
	return stats.Leaderboard(result.Teams, parsed, limit), nil
}

// GlobalTopScorers aggregates every competition in parallel, each against its
// own roster, then merges players by id and adds baseline totals once.
func (s *CompetitionService) GlobalTopScorers(ctx context.Context, limit int) ([]stats.ScorerRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.GlobalTopScorers")
	defer span.End()

	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	parts := iter.Map(items, func(item *competition.Competition) stats.Result {
		return stats.Aggregate(item.Matches(), item.Teams, stats.ModeCompetition)
	})
	merged := stats.Combine(parts, stats.ModeGlobal)

	s.logger.DebugContext(ctx, "global top scorers aggregated",
		"competitions", len(items),
		"matches", merged.MatchesCounted,
		"unresolved", len(merged.Unresolved),
	)

	return stats.TopScorers(merged.Teams, limit), nil
}

// ResolveTeam searches every competition's teams. An empty result is a normal
// outcome, not an error.
func (s *CompetitionService) ResolveTeam(ctx context.Context, name string) ([]TeamMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ResolveTeam")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]TeamMatch, 0)
	for _, item := range items {
		found, tier, ok := resolver.NewIndex(item.Teams).LookupWithTier(name)
		if !ok {
			continue
		}
		out = append(out, TeamMatch{
			CompetitionID:   item.ID,
			CompetitionName: item.Name,
			Team:            found,
			Tier:            tier,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompetitionID < out[j].CompetitionID
	})
	return out, nil
}

// UnresolvedEvents lists events that could not be credited, for data-quality
// review.
func (s *CompetitionService) UnresolvedEvents(ctx context.Context, competitionID string) ([]stats.UnresolvedEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.UnresolvedEvents")
	defer span.End()

	item, err := s.load(ctx, competitionID)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	result := stats.Aggregate(item.Matches(), item.Teams, stats.ModeCompetition)
	if result.Unresolved == nil {
		return []stats.UnresolvedEvent{}, nil
	}
	return result.Unresolved, nil
}

func (s *CompetitionService) load(ctx context.Context, competitionID string) (competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	return item, nil
}
