package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerBoardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/bookmakers", handler.ListBookmakers)
	mux.HandleFunc("GET /v1/board", handler.GetBoard)
	mux.HandleFunc("GET /v1/board/export", handler.ExportBoard)
	mux.HandleFunc("POST /v1/board/stats", handler.GetBoardStats)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("DELETE /v1/internal/jobs/cache", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.FlushBoardCache)))
	mux.Handle("POST /v1/internal/jobs/sync-countries", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncCountriesJob)))
	mux.Handle("POST /v1/internal/jobs/sync-leagues", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLeaguesJob)))
	mux.Handle("POST /v1/internal/jobs/sync-teams", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncTeamsJob)))
	mux.Handle("POST /v1/internal/jobs/sync-fixtures", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncFixturesJob)))
}
