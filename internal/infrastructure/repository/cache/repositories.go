package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-hub/internal/domain/competition"
	"github.com/riskibarqy/league-hub/internal/platform/logging"
	"github.com/riskibarqy/league-hub/internal/platform/resilience"
)

const (
	keyCompetitionList = "competition:list"
	keyCompetitionByID = "competition:id:"
)

// CompetitionRepository is a read-through cache in front of another
// repository. Every write path drops the cached list and the written id.
type CompetitionRepository struct {
	next    competition.Repository
	backend Backend
	logger  *logging.Logger
	flight  resilience.SingleFlight

	// generation counts invalidations. A load only stores its value when no
	// write finished while it ran; stores hold the read lock so an
	// invalidation waits for them before deleting.
	mu         sync.RWMutex
	generation uint64
}

func NewCompetitionRepository(next competition.Repository, backend Backend, logger *logging.Logger) *CompetitionRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &CompetitionRepository{next: next, backend: backend, logger: logger}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	var items []competition.Competition
	if r.lookup(ctx, keyCompetitionList, &items) {
		return items, nil
	}

	v, err, _ := r.flight.Do(keyCompetitionList, func() (any, error) {
		gen := r.currentGeneration()
		loaded, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		r.store(ctx, gen, keyCompetitionList, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	loaded, _ := v.([]competition.Competition)
	out := make([]competition.Competition, 0, len(loaded))
	for _, item := range loaded {
		out = append(out, item.Clone())
	}
	return out, nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, id string) (competition.Competition, bool, error) {
	id = strings.TrimSpace(id)
	key := keyCompetitionByID + id

	var item competition.Competition
	if r.lookup(ctx, key, &item) {
		return item, true, nil
	}

	v, err, _ := r.flight.Do(key, func() (any, error) {
		gen := r.currentGeneration()
		loaded, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		// Misses are not cached so a later Create is visible immediately.
		if exists {
			r.store(ctx, gen, key, loaded)
		}
		return cachedCompetitionByID{value: loaded, exists: exists}, nil
	})
	if err != nil {
		return competition.Competition{}, false, err
	}

	cached, _ := v.(cachedCompetitionByID)
	return cached.value.Clone(), cached.exists, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, item competition.Competition) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.ID)
	return nil
}

func (r *CompetitionRepository) Update(ctx context.Context, id string, fn competition.MutateFunc) (competition.Competition, error) {
	updated, err := r.next.Update(ctx, id, fn)
	if err != nil {
		return competition.Competition{}, err
	}
	r.invalidate(ctx, strings.TrimSpace(id))
	return updated, nil
}

type cachedCompetitionByID struct {
	value  competition.Competition
	exists bool
}

func (r *CompetitionRepository) lookup(ctx context.Context, key string, out any) bool {
	raw, ok, err := r.backend.Get(ctx, key)
	if err != nil {
		r.logger.WarnContext(ctx, "competition cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		r.logger.WarnContext(ctx, "competition cache entry is corrupt", "key", key, "error", err)
		_ = r.backend.Delete(ctx, key)
		return false
	}
	return true
}

func (r *CompetitionRepository) currentGeneration() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation
}

// store writes value unless an invalidation happened after gen was read.
func (r *CompetitionRepository) store(ctx context.Context, gen uint64, key string, value any) {
	raw, err := sonic.Marshal(value)
	if err != nil {
		r.logger.WarnContext(ctx, "competition cache encode failed", "key", key, "error", err)
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.generation != gen {
		r.logger.DebugContext(ctx, "competition cache store skipped after write", "key", key)
		return
	}
	if err := r.backend.Set(ctx, key, raw); err != nil {
		r.logger.WarnContext(ctx, "competition cache write failed", "key", key, "error", err)
	}
}

// invalidate bumps the generation so loads that started before the write
// never store, and detaches them from new callers.
func (r *CompetitionRepository) invalidate(ctx context.Context, id string) {
	r.mu.Lock()
	r.generation++
	r.mu.Unlock()

	r.flight.Forget(keyCompetitionList, keyCompetitionByID+id)
	if err := r.backend.Delete(ctx, keyCompetitionList, keyCompetitionByID+id); err != nil {
		// A stale entry would outlive the write, so surface it loudly.
		r.logger.ErrorContext(ctx, "competition cache invalidation failed",
			"competition_id", id,
			"error", fmt.Errorf("delete cache keys: %w", err),
		)
	}
}
