package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/league-hub/internal/domain/competition"
	"github.com/riskibarqy/league-hub/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/league-hub/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo competitions when no live competition exists
// and reports how many rows it inserted. Rows created concurrently by another
// instance are skipped.
func BootstrapSeed(ctx context.Context, repo *CompetitionRepository) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("competitions").Where(qb.IsNull("deleted_at")).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build seed count query: %w", err)
	}

	var existing int
	if err := repo.db.GetContext(ctx, &existing, query, args...); err != nil {
		return 0, fmt.Errorf("count competitions for bootstrap seed: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	seeded := 0
	for _, item := range memory.SeedCompetitions() {
		err := repo.Create(ctx, item)
		switch {
		case errors.Is(err, competition.ErrConflict):
		case err != nil:
			return seeded, fmt.Errorf("seed competition %s: %w", item.ID, err)
		default:
			seeded++
		}
	}
	return seeded, nil
}
