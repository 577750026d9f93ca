package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-hub/internal/domain/competition"
	"github.com/riskibarqy/league-hub/internal/platform/logging"
)

const (
	recomputeStatusSuccess   = "success"
	recomputeStatusUnchanged = "unchanged"
	recomputeStatusFailed    = "failed"

	defaultRecomputeWorkers = 4
	maxRecomputeWorkers     = 32
)

var errDerivedUnchanged = errors.New("derived state unchanged")

type RecomputeInput struct {
	// CompetitionIDs limits the run; empty means every stored competition.
	CompetitionIDs []string
	MaxWorkers     int
}

type RecomputeResult struct {
	TaskCount      int                   `json:"task_count"`
	SuccessCount   int                   `json:"success_count"`
	UnchangedCount int                   `json:"unchanged_count"`
	FailedCount    int                   `json:"failed_count"`
	WorkerCount    int                   `json:"worker_count"`
	Tasks          []RecomputeTaskResult `json:"tasks"`
}

type RecomputeTaskResult struct {
	CompetitionID string `json:"competition_id"`
	Status        string `json:"status"`
	Version       int64  `json:"version"`
	DurationMs    int64  `json:"duration_ms"`
	Message       string `json:"message,omitempty"`
}

// RecomputeService repairs derived state by rebuilding it from each
// competition's match log through the same transaction primitive imports use.
type RecomputeService struct {
	repo      competition.Repository
	publisher EventPublisher
	logger    *logging.Logger
	now       func() time.Time
	workers   int
}

func NewRecomputeService(repo competition.Repository, publisher EventPublisher, logger *logging.Logger) *RecomputeService {
	if logger == nil {
		logger = logging.Default()
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}

	return &RecomputeService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		workers:   defaultRecomputeWorkers,
	}
}

// SetDefaultWorkers sets the pool size used when a run does not ask for one.
func (s *RecomputeService) SetDefaultWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

func (s *RecomputeService) RecomputeAll(ctx context.Context, input RecomputeInput) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.RecomputeAll")
	defer span.End()

	ids, err := s.resolveTargets(ctx, input.CompetitionIDs)
	if err != nil {
		recordSpanError(span, err)
		return RecomputeResult{}, err
	}

	requested := input.MaxWorkers
	if requested <= 0 {
		requested = s.workers
	}
	workerCount := normalizeRecomputeWorkerCount(requested, len(ids))
	result := RecomputeResult{
		TaskCount:   len(ids),
		WorkerCount: workerCount,
		Tasks:       make([]RecomputeTaskResult, 0, len(ids)),
	}
	if len(ids) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan RecomputeTaskResult, len(ids))
	var successCount atomic.Int32
	var unchangedCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, id := range ids {
		id := id
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := s.recomputeOne(ctx, id)
			switch row.Status {
			case recomputeStatusSuccess:
				successCount.Add(1)
			case recomputeStatusUnchanged:
				unchangedCount.Add(1)
			default:
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].CompetitionID < result.Tasks[j].CompetitionID
	})

	result.SuccessCount = int(successCount.Load())
	result.UnchangedCount = int(unchangedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "recompute finished",
		"tasks", result.TaskCount,
		"success", result.SuccessCount,
		"unchanged", result.UnchangedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *RecomputeService) recomputeOne(ctx context.Context, competitionID string) RecomputeTaskResult {
	start := s.now()
	row := RecomputeTaskResult{CompetitionID: competitionID}

	updated, err := s.repo.Update(ctx, competitionID, func(current competition.Competition) (competition.Competition, error) {
		next := current.Recompute()
		if reflect.DeepEqual(next.Standings, current.Standings) && reflect.DeepEqual(next.Teams, current.Teams) {
			return competition.Competition{}, errDerivedUnchanged
		}
		return next, nil
	})
	row.DurationMs = s.now().Sub(start).Milliseconds()

	switch {
	case errors.Is(err, errDerivedUnchanged):
		row.Status = recomputeStatusUnchanged
		return row
	case err != nil:
		row.Status = recomputeStatusFailed
		row.Message = err.Error()
		s.logger.WarnContext(ctx, "recompute competition failed",
			"competition_id", competitionID,
			"error", err,
		)
		return row
	}

	row.Status = recomputeStatusSuccess
	row.Version = updated.Version

	event := CompetitionUpdated{
		CompetitionID: updated.ID,
		Version:       updated.Version,
		Reason:        UpdateReasonRecompute,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.PublishCompetitionUpdated(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish competition updated failed",
			"competition_id", updated.ID,
			"error", err,
		)
	}
	return row
}

func (s *RecomputeService) resolveTargets(ctx context.Context, requested []string) ([]string, error) {
	seen := make(map[string]struct{}, len(requested))
	out := make([]string, 0, len(requested))
	for _, id := range requested {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) > 0 {
		sort.Strings(out)
		return out, nil
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	for _, item := range items {
		out = append(out, item.ID)
	}
	sort.Strings(out)
	return out, nil
}

func normalizeRecomputeWorkerCount(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultRecomputeWorkers
	}
	if workers > maxRecomputeWorkers {
		workers = maxRecomputeWorkers
	}
	if tasks > 0 && workers > tasks {
		workers = tasks
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
