package httpapi

import (
	"net/http"

	"github.com/riskibarqy/hockey-league/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerStandingsRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/standings", authorized(verifier, user.PermissionViewLeague, handler.GetStandings))
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/stats", authorized(verifier, user.PermissionViewStats, handler.ListStats))
	mux.Handle("POST /v1/stats", authorized(verifier, user.PermissionEnterStats, handler.CreateStat))
}

func registerStatsQueueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/stats/queue", authorized(verifier, user.PermissionEnterStats, handler.EnqueueStats))
	mux.Handle("PUT /v1/stats/queue", authorized(verifier, user.PermissionEnterStats, handler.ProcessStatsQueue))
	mux.Handle("GET /v1/stats/queue", authorized(verifier, user.PermissionEnterStats, handler.GetStatsQueueStatus))
	mux.Handle("DELETE /v1/stats/queue", authorized(verifier, user.PermissionEnterStats, handler.ClearStatsQueue))
}

func registerProviderRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/providers/ea-sports/status", authorized(verifier, user.PermissionViewStats, handler.GetProviderStatus))
	mux.Handle("GET /v1/providers/ea-sports/matches", authorized(verifier, user.PermissionEnterStats, handler.ListProviderMatches))
	mux.Handle("POST /v1/providers/ea-sports/import", authorized(verifier, user.PermissionEnterStats, handler.ImportProviderMatch))
	mux.Handle("GET /v1/providers/ea-sports/clubs", authorized(verifier, user.PermissionEnterStats, handler.ListProviderClubs))
	mux.Handle("PUT /v1/providers/ea-sports/clubs", authorized(verifier, user.PermissionEnterStats, handler.ReplaceProviderClubs))
	mux.Handle("POST /v1/providers/ea-sports/clubs", authorized(verifier, user.PermissionEnterStats, handler.AddProviderClub))
	mux.Handle("DELETE /v1/providers/ea-sports/clubs/{clubID}", authorized(verifier, user.PermissionEnterStats, handler.RemoveProviderClub))
}

func authorized(verifier TokenVerifier, perm user.Permission, fn http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, RequirePermission(perm, fn))
}
