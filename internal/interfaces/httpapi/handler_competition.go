package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.competitionService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]competitionSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, competitionSummaryToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.GetCompetition")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	item, err := h.competitionService.Get(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(item))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.GetStandings")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	table, err := h.competitionService.Standings(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(competitionID, table))
}

func (h *Handler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.ListTopScorers")
	defer span.End()

	limit, err := parseLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	competitionID := r.PathValue("competitionID")
	items, err := h.competitionService.TopScorers(ctx, competitionID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list top scorers failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scorersToDTO(items))
}

func (h *Handler) ListLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.ListLeaderboard")
	defer span.End()

	limit, err := parseLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	competitionID := r.PathValue("competitionID")
	metric := r.PathValue("metric")
	items, err := h.competitionService.Leaderboard(ctx, competitionID, metric, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list leaderboard failed", "competition_id", competitionID, "metric", metric, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leadersToDTO(items))
}

func (h *Handler) ListUnresolvedEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.ListUnresolvedEvents")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	items, err := h.competitionService.UnresolvedEvents(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list unresolved events failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, unresolvedToDTO(items))
}

func (h *Handler) ListGlobalTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.ListGlobalTopScorers")
	defer span.End()

	limit, err := parseLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.competitionService.GlobalTopScorers(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list global top scorers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scorersToDTO(items))
}

func (h *Handler) ResolveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.ResolveTeam")
	defer span.End()

	name := r.URL.Query().Get("name")
	items, err := h.competitionService.ResolveTeam(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve team failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamMatchesToDTO(items))
}
