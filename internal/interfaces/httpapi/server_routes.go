package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}", handler.GetCompetition)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/topscorers", handler.ListTopScorers)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/leaderboards/{metric}", handler.ListLeaderboard)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/unresolved-events", handler.ListUnresolvedEvents)
	mux.HandleFunc("GET /v1/topscorers", handler.ListGlobalTopScorers)
	mux.HandleFunc("GET /v1/teams/resolve", handler.ResolveTeam)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/competitions/{competitionID}/imports", RequireAdminToken(adminToken, http.HandlerFunc(handler.PreviewImport)))
	mux.Handle("GET /v1/imports/{reviewID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.GetImportReview)))
	mux.Handle("PATCH /v1/imports/{reviewID}/items/{index}", RequireAdminToken(adminToken, http.HandlerFunc(handler.ToggleImportItem)))
	mux.Handle("POST /v1/imports/{reviewID}/commit", RequireAdminToken(adminToken, http.HandlerFunc(handler.CommitImport)))
	mux.Handle("DELETE /v1/imports/{reviewID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.DiscardImport)))
	// Rebuilds standings and player totals from the stored match logs.
	mux.Handle("POST /v1/internal/recompute", RequireAdminToken(adminToken, http.HandlerFunc(handler.RunRecompute)))
}
