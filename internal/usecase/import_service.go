package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/league-hub/internal/domain/competition"
	"github.com/riskibarqy/league-hub/internal/domain/feed"
	"github.com/riskibarqy/league-hub/internal/domain/reconcile"
	"github.com/riskibarqy/league-hub/internal/platform/cache"
	idgen "github.com/riskibarqy/league-hub/internal/platform/id"
	"github.com/riskibarqy/league-hub/internal/platform/logging"
)

type ReviewStatus string

const (
	ReviewStatusPending ReviewStatus = "pending"
	ReviewStatusFailed  ReviewStatus = "failed"

	reviewKeyPrefix = "review:"
)

// PreviewInput selects the feed to reconcile against a competition.
type PreviewInput struct {
	CompetitionID string
	Source        string
	URL           string
	Date          time.Time
}

// Review is a pending import. A failed review carries the fetch error in
// Reason and is never stored.
type Review struct {
	ID            string
	CompetitionID string
	Source        string
	Status        ReviewStatus
	Reason        string
	BaseVersion   int64
	Items         []reconcile.ReviewedMatch
	CreatedAt     time.Time
}

func (r Review) batch() reconcile.Batch {
	return reconcile.Batch{
		CompetitionID: r.CompetitionID,
		BaseVersion:   r.BaseVersion,
		Items:         r.Items,
	}
}

func (r Review) clone() Review {
	out := r
	out.Items = append([]reconcile.ReviewedMatch(nil), r.Items...)
	return out
}

type ImportService struct {
	repo      competition.Repository
	providers map[string]feed.Provider
	reviews   *cache.Store
	reviewIDs idgen.Generator
	matchIDs  idgen.Generator
	publisher EventPublisher
	logger    *logging.Logger
	now       func() time.Time

	// mu serialises review read-modify-write; competition writes are guarded
	// by the repository's optimistic version check instead.
	mu sync.Mutex
}

func NewImportService(
	repo competition.Repository,
	providers []feed.Provider,
	reviews *cache.Store,
	reviewIDs idgen.Generator,
	matchIDs idgen.Generator,
	publisher EventPublisher,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}

	byName := make(map[string]feed.Provider, len(providers))
	for _, provider := range providers {
		if provider == nil {
			continue
		}
		byName[strings.ToLower(provider.Name())] = provider
	}

	return &ImportService{
		repo:      repo,
		providers: byName,
		reviews:   reviews,
		reviewIDs: reviewIDs,
		matchIDs:  matchIDs,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Preview fetches candidates and reconciles them against the competition's
// current log. Feed failures return a failed Review rather than an error.
func (s *ImportService) Preview(ctx context.Context, input PreviewInput) (Review, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Preview")
	defer span.End()

	input.CompetitionID = strings.TrimSpace(input.CompetitionID)
	input.Source = strings.ToLower(strings.TrimSpace(input.Source))
	if input.CompetitionID == "" {
		return Review{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if input.Source == "" {
		return Review{}, fmt.Errorf("%w: source is required", ErrInvalidInput)
	}
	provider, ok := s.providers[input.Source]
	if !ok {
		return Review{}, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, input.Source)
	}

	current, exists, err := s.repo.GetByID(ctx, input.CompetitionID)
	if err != nil {
		recordSpanError(span, err)
		return Review{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return Review{}, fmt.Errorf("%w: competition=%s", ErrNotFound, input.CompetitionID)
	}

	review := Review{
		CompetitionID: current.ID,
		Source:        provider.Name(),
		BaseVersion:   current.Version,
		CreatedAt:     s.now().UTC(),
	}

	candidates, err := provider.FetchMatches(ctx, feed.Request{
		Source:        input.Source,
		URL:           strings.TrimSpace(input.URL),
		CompetitionID: current.ID,
		Date:          input.Date,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "import feed fetch failed",
			"competition_id", current.ID,
			"source", provider.Name(),
			"error", err,
		)
		review.Status = ReviewStatusFailed
		review.Reason = err.Error()
		return review, nil
	}

	review.Items = reconcile.Reconcile(candidates, reconcile.Existing{
		Fixtures: current.Fixtures,
		Results:  current.Results,
	}, current.TeamNames())
	review.Status = ReviewStatusPending

	reviewID, err := s.reviewIDs.NewID()
	if err != nil {
		recordSpanError(span, err)
		return Review{}, fmt.Errorf("generate review id: %w", err)
	}
	review.ID = reviewID
	s.reviews.Set(ctx, reviewKeyPrefix+reviewID, review.clone())

	s.logger.InfoContext(ctx, "import review created",
		"review_id", review.ID,
		"competition_id", review.CompetitionID,
		"source", review.Source,
		"candidates", len(review.Items),
		"selected", len(reconcile.Selected(review.Items)),
	)
	return review, nil
}

func (s *ImportService) GetReview(ctx context.Context, reviewID string) (Review, error) {
	review, err := s.loadReview(ctx, reviewID)
	if err != nil {
		return Review{}, err
	}
	return review.clone(), nil
}

// Toggle flips the selection of one item regardless of its classification.
func (s *ImportService) Toggle(ctx context.Context, reviewID string, index int, selected bool) (Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, err := s.loadReview(ctx, reviewID)
	if err != nil {
		return Review{}, err
	}

	items, err := reconcile.SetSelected(review.Items, index, selected)
	if err != nil {
		return Review{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	review.Items = items
	s.reviews.Set(ctx, reviewKeyPrefix+review.ID, review.clone())

	return review, nil
}

// Discard drops the review. Nothing was persisted, so nothing is undone.
func (s *ImportService) Discard(ctx context.Context, reviewID string) error {
	reviewID = strings.TrimSpace(reviewID)
	if reviewID == "" {
		return fmt.Errorf("%w: review id is required", ErrInvalidInput)
	}
	if !s.reviews.Delete(ctx, reviewKeyPrefix+reviewID) {
		return fmt.Errorf("%w: review=%s", ErrNotFound, reviewID)
	}
	return nil
}

// Commit merges the selected items in one repository transaction. On a
// version conflict the review stays queued so the caller can re-preview.
func (s *ImportService) Commit(ctx context.Context, reviewID string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Commit")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	review, err := s.loadReview(ctx, reviewID)
	if err != nil {
		return competition.Competition{}, err
	}

	updated, err := reconcile.Commit(ctx, s.repo, review.batch(), s.matchIDs.NewID)
	if err != nil {
		err = mapCommitError(err, review)
		recordSpanError(span, err)
		return competition.Competition{}, err
	}

	s.reviews.Delete(ctx, reviewKeyPrefix+review.ID)

	added := len(reconcile.Selected(review.Items))
	s.logger.InfoContext(ctx, "import committed",
		"review_id", review.ID,
		"competition_id", updated.ID,
		"version", updated.Version,
		"added", added,
	)

	event := CompetitionUpdated{
		CompetitionID: updated.ID,
		Version:       updated.Version,
		Reason:        UpdateReasonImport,
		Added:         added,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.PublishCompetitionUpdated(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish competition updated failed",
			"competition_id", updated.ID,
			"error", err,
		)
	}

	return updated, nil
}

func (s *ImportService) loadReview(ctx context.Context, reviewID string) (Review, error) {
	reviewID = strings.TrimSpace(reviewID)
	if reviewID == "" {
		return Review{}, fmt.Errorf("%w: review id is required", ErrInvalidInput)
	}

	value, ok := s.reviews.Get(ctx, reviewKeyPrefix+reviewID)
	if !ok {
		return Review{}, fmt.Errorf("%w: review=%s", ErrNotFound, reviewID)
	}
	review, ok := value.(Review)
	if !ok {
		return Review{}, fmt.Errorf("review %s has unexpected type %T", reviewID, value)
	}
	return review, nil
}

func mapCommitError(err error, review Review) error {
	switch {
	case errors.Is(err, reconcile.ErrNothingSelected):
		return fmt.Errorf("%w: review %s has no selected items", ErrInvalidInput, review.ID)
	case errors.Is(err, competition.ErrConflict):
		return fmt.Errorf("%w: competition %s changed since review %s was built: %v", ErrConflict, review.CompetitionID, review.ID, err)
	case errors.Is(err, competition.ErrNotFound):
		return fmt.Errorf("%w: competition=%s", ErrNotFound, review.CompetitionID)
	default:
		return fmt.Errorf("commit review %s: %w", review.ID, err)
	}
}
