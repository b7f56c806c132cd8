package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerScoringRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players/values", handler.ListPlayerValues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListStandings)
	mux.HandleFunc("POST /v1/analyze/trade", handler.AnalyzeTrade)
	mux.HandleFunc("GET /v1/audit/{entityType}/{entityID}", handler.ListAuditTrail)
}

func registerMutationRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/leagues/{leagueID}/standings/recalculate", handler.RecalculateStandings)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/rosters/import", handler.ImportRosters)
	mux.HandleFunc("POST /v1/tasks", handler.SubmitTask)
	mux.HandleFunc("POST /v1/tasks/{taskID}/run", handler.RunTask)
	mux.HandleFunc("GET /v1/tasks/{taskID}", handler.GetTask)
}
