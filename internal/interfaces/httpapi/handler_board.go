package httpapi

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/oddsradar/oddsradar/internal/domain/board"
	"github.com/oddsradar/oddsradar/internal/domain/fixture"
	"github.com/oddsradar/oddsradar/internal/domain/teamstats"
	"github.com/oddsradar/oddsradar/internal/platform/logging"
	"github.com/oddsradar/oddsradar/internal/usecase"
)

func (h *Handler) ListBookmakers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBookmakers")
	defer span.End()

	bookmakers := h.boardService.Bookmakers()
	out := make([]bookmakerDTO, 0, len(bookmakers))
	for _, b := range bookmakers {
		out = append(out, bookmakerDTO{ID: b.ID, Name: b.Name})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoard")
	defer span.End()

	query, err := boardQueryFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.boardService.Get(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "get board failed",
			logging.String("date", query.Date),
			logging.Err(err),
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapBoardResponse(result))
}

// ExportBoard streams the board as a CSV attachment.
func (h *Handler) ExportBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportBoard")
	defer span.End()

	query, err := boardQueryFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.boardService.Get(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "export board failed",
			logging.String("date", query.Date),
			logging.Err(err),
		)
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := writeBoardCSV(buf, result.Rows); err != nil {
		h.logger.ErrorContext(ctx, "encode board csv failed", logging.Err(err))
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="board-`+result.Date+`.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}

var boardCSVHeader = []string{
	"fixture_id", "kickoff", "league", "home_team", "away_team",
	"home_win", "draw", "away_win",
	"home_over_label", "home_over_price", "away_over_label", "away_over_price",
	"auto_selected", "selection_reason",
}

func writeBoardCSV(buf *bytebufferpool.ByteBuffer, rows []board.Row) error {
	cw := csv.NewWriter(buf)
	if err := cw.Write(boardCSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.Fixture.ID, 10),
			row.KickoffLocal,
			row.Fixture.LeagueName,
			row.Fixture.HomeTeamName,
			row.Fixture.AwayTeamName,
			csvPrice(row.HomeWin),
			csvPrice(row.Draw),
			csvPrice(row.AwayWin),
			row.HomeOverLabel,
			csvPrice(row.HomeOverPrice),
			row.AwayOverLabel,
			csvPrice(row.AwayOverPrice),
			strconv.FormatBool(row.AutoSelected),
			string(row.SelectionReason),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvPrice(price *float64) string {
	if price == nil {
		return ""
	}
	return strconv.FormatFloat(*price, 'f', 2, 64)
}

type boardStatsRequest struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	League      string  `json:"league"`
	BookmakerID int64   `json:"bookmakerId" validate:"omitempty,gt=0"`
	FixtureIDs  []int64 `json:"fixtureIds" validate:"required,min=1,dive,gt=0"`
}

type fixtureStatsDTO struct {
	FixtureID     int64  `json:"fixtureId"`
	HomeTeam      string `json:"homeTeam"`
	AwayTeam      string `json:"awayTeam"`
	Played        string `json:"played"`
	Wins          string `json:"wins"`
	Losses        string `json:"losses"`
	GoalsFor      string `json:"goalsFor"`
	GoalsAgainst  string `json:"goalsAgainst"`
	FailedToScore string `json:"failedToScore"`
}

// GetBoardStats enriches the selected board fixtures with both teams'
// season records. It is a POST because stats fan out to provider calls
// per selected fixture and clients trigger it explicitly.
func (h *Handler) GetBoardStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoardStats")
	defer span.End()

	var req boardStatsRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.boardService.Get(ctx, boardQueryFromStatsRequest(req))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	// Only the requested fixtures are enriched; ids absent from the
	// day's board are ignored.
	selected := make(map[int64]struct{}, len(req.FixtureIDs))
	for _, id := range req.FixtureIDs {
		selected[id] = struct{}{}
	}
	fixtures := make([]fixture.Fixture, 0, len(req.FixtureIDs))
	for _, row := range result.Rows {
		if _, ok := selected[row.Fixture.ID]; !ok {
			continue
		}
		fixtures = append(fixtures, row.Fixture)
	}

	pairs, err := h.statsService.EnrichFixtures(ctx, fixtures)
	if err != nil {
		h.logger.ErrorContext(ctx, "enrich board stats failed",
			logging.String("date", req.Date),
			logging.Err(err),
		)
		writeError(ctx, w, err)
		return
	}

	out := make([]fixtureStatsDTO, 0, len(fixtures))
	for _, f := range fixtures {
		pair, ok := pairs[f.ID]
		if !ok {
			continue
		}
		out = append(out, mapFixtureStats(f, pair))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func boardQueryFromStatsRequest(req boardStatsRequest) usecase.BoardQuery {
	return usecase.BoardQuery{
		Date:        req.Date,
		League:      req.League,
		BookmakerID: req.BookmakerID,
	}
}

func mapFixtureStats(f fixture.Fixture, pair teamstats.StatsPair) fixtureStatsDTO {
	return fixtureStatsDTO{
		FixtureID:     f.ID,
		HomeTeam:      f.HomeTeamName,
		AwayTeam:      f.AwayTeamName,
		Played:        pair.Played,
		Wins:          pair.Wins,
		Losses:        pair.Losses,
		GoalsFor:      pair.GoalsFor,
		GoalsAgainst:  pair.GoalsAgainst,
		FailedToScore: pair.FailedToScore,
	}
}
