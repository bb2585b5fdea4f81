package httpapi

import (
	"net/http"

	"github.com/oddsradar/oddsradar/internal/platform/logging"
)

func (h *Handler) FlushBoardCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FlushBoardCache")
	defer span.End()

	evicted := h.boardService.FlushCache()
	h.logger.InfoContext(ctx, "board cache flushed", logging.Int("evicted", evicted))
	writeSuccess(ctx, w, http.StatusOK, map[string]int{"evicted": evicted})
}

func (h *Handler) RunSyncCountriesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncCountriesJob")
	defer span.End()

	result, err := h.syncService.SyncCountries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync countries job failed", logging.Err(err))
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSyncLeaguesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLeaguesJob")
	defer span.End()

	result, err := h.syncService.SyncLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync leagues job failed", logging.Err(err))
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSyncTeamsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncTeamsJob")
	defer span.End()

	result, err := h.syncService.SyncTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync teams job failed", logging.Err(err))
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

type syncFixturesRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (h *Handler) RunSyncFixturesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncFixturesJob")
	defer span.End()

	var req syncFixturesRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SyncFixtures(ctx, req.Date)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync fixtures job failed",
			logging.String("date", req.Date),
			logging.Err(err),
		)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}
