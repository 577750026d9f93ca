package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/league-hub/internal/usecase"
)

type previewImportRequest struct {
	Source string `json:"source" validate:"required,max=64"`
	URL    string `json:"url" validate:"omitempty,url,max=2048"`
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type toggleImportItemRequest struct {
	Selected *bool `json:"selected" validate:"required"`
}

type recomputeRequest struct {
	CompetitionIDs []string `json:"competition_ids" validate:"omitempty,dive,required,max=128"`
	MaxWorkers     int      `json:"max_workers" validate:"gte=0,lte=32"`
}

// PreviewImport answers 200 for a failed fetch too; the review then carries
// status "failed" and the reason.
func (h *Handler) PreviewImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.PreviewImport")
	defer span.End()

	var req previewImportRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.PreviewInput{
		CompetitionID: r.PathValue("competitionID"),
		Source:        req.Source,
		URL:           req.URL,
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: date must be YYYY-MM-DD", usecase.ErrInvalidInput))
			return
		}
		input.Date = date
	}

	review, err := h.importService.Preview(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "preview import failed", "competition_id", input.CompetitionID, "source", req.Source, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusCreated
	if review.Status == usecase.ReviewStatusFailed {
		status = http.StatusOK
	}
	writeSuccess(ctx, w, status, reviewToDTO(review))
}

func (h *Handler) GetImportReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.GetImportReview")
	defer span.End()

	reviewID := r.PathValue("reviewID")
	review, err := h.importService.GetReview(ctx, reviewID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reviewToDTO(review))
}

func (h *Handler) ToggleImportItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.ToggleImportItem")
	defer span.End()

	index, err := strconv.Atoi(strings.TrimSpace(r.PathValue("index")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: item index must be an integer", usecase.ErrInvalidInput))
		return
	}

	var req toggleImportItemRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	reviewID := r.PathValue("reviewID")
	review, err := h.importService.Toggle(ctx, reviewID, index, *req.Selected)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle import item failed", "review_id", reviewID, "index", index, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reviewToDTO(review))
}

func (h *Handler) CommitImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.CommitImport")
	defer span.End()

	reviewID := r.PathValue("reviewID")
	updated, err := h.importService.Commit(ctx, reviewID)
	if err != nil {
		h.logger.WarnContext(ctx, "commit import failed", "review_id", reviewID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionSummaryToDTO(updated))
}

func (h *Handler) DiscardImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.DiscardImport")
	defer span.End()

	reviewID := r.PathValue("reviewID")
	if err := h.importService.Discard(ctx, reviewID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"discarded": true})
}

func (h *Handler) RunRecompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.RunRecompute")
	defer span.End()

	var req recomputeRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recomputeService.RecomputeAll(ctx, usecase.RecomputeInput{
		CompetitionIDs: req.CompetitionIDs,
		MaxWorkers:     req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
