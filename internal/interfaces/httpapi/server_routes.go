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

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/clubs/{clubID}", handler.GetClubDetails)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeamDetails)
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/seasons", handler.ListSeasonsByCompetition)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/fixtures", handler.ListFixturesBySeason)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}", handler.GetFixtureDetails)
	mux.HandleFunc("GET /v1/ingestion/audit", handler.ListIngestionAudit)
	mux.HandleFunc("GET /v1/ingestion/audit/latest", handler.GetLatestIngestionAudit)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalToken string) {
	mux.Handle("POST /v1/internal/ingestion/run", RequireInternalToken(internalToken, http.HandlerFunc(handler.RunIngestion)))
}
