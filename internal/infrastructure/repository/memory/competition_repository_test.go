package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/league-hub/internal/domain/competition"
)

func TestCompetitionRepository_UpdateBumpsVersion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCompetitionRepository(SeedCompetitions())

	updated, err := repo.Update(ctx, CompetitionIDPremierLeague, func(current competition.Competition) (competition.Competition, error) {
		current.Name = "MTN Premier League"
		return current, nil
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Version != 2 || updated.UpdatedAt.IsZero() {
		t.Fatalf("expected version 2 with a timestamp, got %d %v", updated.Version, updated.UpdatedAt)
	}

	stored, ok, err := repo.GetByID(ctx, CompetitionIDPremierLeague)
	if err != nil || !ok {
		t.Fatalf("GetByID: ok=%v err=%v", ok, err)
	}
	if stored.Name != "MTN Premier League" || stored.Version != 2 {
		t.Fatalf("unexpected stored document: %s v%d", stored.Name, stored.Version)
	}
}

func TestCompetitionRepository_UpdateAbortsOnCallbackError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCompetitionRepository(SeedCompetitions())
	boom := errors.New("boom")

	_, err := repo.Update(ctx, CompetitionIDPremierLeague, func(current competition.Competition) (competition.Competition, error) {
		current.Results = nil
		return current, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	stored, _, _ := repo.GetByID(ctx, CompetitionIDPremierLeague)
	if stored.Version != 1 || len(stored.Results) == 0 {
		t.Fatalf("nothing should have been written, got v%d with %d results", stored.Version, len(stored.Results))
	}
}

func TestCompetitionRepository_UpdateDetectsConcurrentWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCompetitionRepository(SeedCompetitions())

	_, err := repo.Update(ctx, CompetitionIDPremierLeague, func(current competition.Competition) (competition.Competition, error) {
		// A second writer lands while the first one is still computing.
		if _, err := repo.Update(ctx, CompetitionIDPremierLeague, func(inner competition.Competition) (competition.Competition, error) {
			return inner, nil
		}); err != nil {
			t.Fatalf("inner Update error: %v", err)
		}
		return current, nil
	})
	if !errors.Is(err, competition.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCompetitionRepository_ConcurrentUpdatesSerialise(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCompetitionRepository(SeedCompetitions())

	const writers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, CompetitionIDIngwenyamaCup, func(current competition.Competition) (competition.Competition, error) {
				return current, nil
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else if !errors.Is(err, competition.ErrConflict) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	stored, _, _ := repo.GetByID(ctx, CompetitionIDIngwenyamaCup)
	if stored.Version != int64(1+succeeded) {
		t.Fatalf("expected version %d after %d successful writes, got %d", 1+succeeded, succeeded, stored.Version)
	}
}

func TestCompetitionRepository_CreateAndNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCompetitionRepository(nil)

	if err := repo.Create(ctx, competition.Competition{ID: "friendly-1", Name: "Pre-season Friendly", Kind: competition.KindFriendly}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := repo.Create(ctx, competition.Competition{ID: "friendly-1", Name: "Again"}); !errors.Is(err, competition.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate id, got %v", err)
	}
	if err := repo.Create(ctx, competition.Competition{ID: "", Name: "No id"}); err == nil {
		t.Fatalf("expected validation error")
	}

	items, err := repo.List(ctx)
	if err != nil || len(items) != 1 || items[0].Version != 1 {
		t.Fatalf("unexpected list: %+v, %v", items, err)
	}

	_, err = repo.Update(ctx, "missing", func(current competition.Competition) (competition.Competition, error) {
		return current, nil
	})
	if !errors.Is(err, competition.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSeedCompetitions_DerivedStateIsComputed(t *testing.T) {
	t.Parallel()

	items := SeedCompetitions()
	league := items[0]
	if len(league.Standings) != len(league.Teams) {
		t.Fatalf("expected a row per team, got %d", len(league.Standings))
	}
	if league.Standings[0].Team.ID != "swz-royal-leopards" || league.Standings[0].Points != 4 {
		t.Fatalf("unexpected leader: %+v", league.Standings[0])
	}

	for _, tm := range league.Teams {
		for _, p := range tm.Players {
			if p.ID == "rl-fwd-01" && p.Stats.Goals != 2 {
				t.Fatalf("expected 2 resolved league goals for the striker, got %d", p.Stats.Goals)
			}
		}
	}
}

func TestCompetitionRepository_UpdateRejectsInvalidDocument(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCompetitionRepository(SeedCompetitions())

	_, err := repo.Update(ctx, CompetitionIDPremierLeague, func(current competition.Competition) (competition.Competition, error) {
		current.Name = "  "
		return current, nil
	})
	if err == nil {
		t.Fatalf("expected a validation error")
	}

	stored, _, _ := repo.GetByID(ctx, CompetitionIDPremierLeague)
	if stored.Version != 1 || stored.Name == "  " {
		t.Fatalf("invalid document must not be stored, got %q v%d", stored.Name, stored.Version)
	}
}
