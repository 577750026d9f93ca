package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/league-hub/internal/domain/competition"
)

type CompetitionRepository struct {
	mu    sync.RWMutex
	items map[string]competition.Competition
	now   func() time.Time
}

func NewCompetitionRepository(items []competition.Competition) *CompetitionRepository {
	byID := make(map[string]competition.Competition, len(items))
	for _, item := range items {
		byID[item.ID] = item.Clone()
	}

	return &CompetitionRepository{items: byID, now: time.Now}
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *CompetitionRepository) GetByID(_ context.Context, id string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[strings.TrimSpace(id)]
	if !ok {
		return competition.Competition{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *CompetitionRepository) Create(_ context.Context, item competition.Competition) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("%w: competition %s already exists", competition.ErrConflict, item.ID)
	}
	item = item.Clone()
	if item.Version == 0 {
		item.Version = 1
	}
	item.UpdatedAt = r.now().UTC()
	r.items[item.ID] = item

	return nil
}

// Update holds the write lock only for the final version check so fn runs
// against a snapshot, the same way a database transaction would.
func (r *CompetitionRepository) Update(ctx context.Context, id string, fn competition.MutateFunc) (competition.Competition, error) {
	current, ok, err := r.GetByID(ctx, id)
	if err != nil {
		return competition.Competition{}, err
	}
	if !ok {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", competition.ErrNotFound, id)
	}

	next, err := fn(current.Clone())
	if err != nil {
		return competition.Competition{}, err
	}
	next.ID = current.ID
	if err := next.Validate(); err != nil {
		return competition.Competition{}, fmt.Errorf("validate competition id=%s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[current.ID]
	if !ok {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", competition.ErrNotFound, id)
	}
	if stored.Version != current.Version {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s read version %d, stored version %d",
			competition.ErrConflict, current.ID, current.Version, stored.Version)
	}

	next = next.Clone()
	next.Version = current.Version + 1
	next.UpdatedAt = r.now().UTC()
	r.items[next.ID] = next

	return next.Clone(), nil
}
