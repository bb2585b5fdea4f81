package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/oddsradar/oddsradar/internal/domain/board"
	"github.com/oddsradar/oddsradar/internal/platform/logging"
	"github.com/oddsradar/oddsradar/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	boardService *usecase.BoardService
	statsService *usecase.StatsService
	syncService  *usecase.SyncService
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(
	boardService *usecase.BoardService,
	statsService *usecase.StatsService,
	syncService *usecase.SyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		boardService: boardService,
		statsService: statsService,
		syncService:  syncService,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeAndValidate(r *http.Request, target any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body", usecase.ErrInvalidInput)
	}
	if len(raw) == 0 {
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: malformed json body", usecase.ErrInvalidInput)
	}
	if err := h.validator.Struct(target); err != nil {
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var invalid validator.ValidationErrors
	if !errorsAsValidation(err, &invalid) || len(invalid) == 0 {
		return "invalid request body"
	}
	fields := make([]string, 0, len(invalid))
	for _, fieldErr := range invalid {
		fields = append(fields, fieldErr.Field()+" failed "+fieldErr.Tag())
	}
	return strings.Join(fields, "; ")
}

func errorsAsValidation(err error, target *validator.ValidationErrors) bool {
	v, ok := err.(validator.ValidationErrors)
	if ok {
		*target = v
	}
	return ok
}

// boardQueryFromRequest parses the shared board query parameters.
func boardQueryFromRequest(r *http.Request) (usecase.BoardQuery, error) {
	query := usecase.BoardQuery{
		Date:   strings.TrimSpace(r.URL.Query().Get("date")),
		League: strings.TrimSpace(r.URL.Query().Get("league")),
	}
	if query.Date == "" {
		return usecase.BoardQuery{}, fmt.Errorf("%w: date query parameter is required", usecase.ErrInvalidInput)
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("bookmaker_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return usecase.BoardQuery{}, fmt.Errorf("%w: bookmaker_id must be a positive integer", usecase.ErrInvalidInput)
		}
		query.BookmakerID = id
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("goal_odds_only")); raw != "" {
		only, err := strconv.ParseBool(raw)
		if err != nil {
			return usecase.BoardQuery{}, fmt.Errorf("%w: goal_odds_only must be a boolean", usecase.ErrInvalidInput)
		}
		query.RequireGoalOdds = only
	}
	return query, nil
}

type bookmakerDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type boardRowDTO struct {
	FixtureID       int64    `json:"fixtureId"`
	League          string   `json:"league"`
	Country         string   `json:"country,omitempty"`
	Kickoff         string   `json:"kickoff"`
	HomeTeam        string   `json:"homeTeam"`
	AwayTeam        string   `json:"awayTeam"`
	HomeWin         *float64 `json:"homeWin"`
	Draw            *float64 `json:"draw"`
	AwayWin         *float64 `json:"awayWin"`
	HomeOverPrice   *float64 `json:"homeOverPrice"`
	HomeOverLabel   string   `json:"homeOverLabel,omitempty"`
	HomeOverCaption string   `json:"homeOverCaption,omitempty"`
	AwayOverPrice   *float64 `json:"awayOverPrice"`
	AwayOverLabel   string   `json:"awayOverLabel,omitempty"`
	AwayOverCaption string   `json:"awayOverCaption,omitempty"`
	AutoSelected    bool     `json:"autoSelected"`
	SelectionReason string   `json:"selectionReason,omitempty"`
}

type boardResponseDTO struct {
	Date      string        `json:"date"`
	Bookmaker bookmakerDTO  `json:"bookmaker"`
	Leagues   []string      `json:"leagues"`
	Rows      []boardRowDTO `json:"rows"`
}

func mapBoardRow(row board.Row) boardRowDTO {
	return boardRowDTO{
		FixtureID:       row.Fixture.ID,
		League:          row.Fixture.LeagueName,
		Country:         row.Fixture.Country,
		Kickoff:         row.KickoffLocal,
		HomeTeam:        row.Fixture.HomeTeamName,
		AwayTeam:        row.Fixture.AwayTeamName,
		HomeWin:         row.HomeWin,
		Draw:            row.Draw,
		AwayWin:         row.AwayWin,
		HomeOverPrice:   row.HomeOverPrice,
		HomeOverLabel:   row.HomeOverLabel,
		HomeOverCaption: row.HomeOverCaption,
		AwayOverPrice:   row.AwayOverPrice,
		AwayOverLabel:   row.AwayOverLabel,
		AwayOverCaption: row.AwayOverCaption,
		AutoSelected:    row.AutoSelected,
		SelectionReason: string(row.SelectionReason),
	}
}

func mapBoardResponse(result usecase.BoardResult) boardResponseDTO {
	rows := make([]boardRowDTO, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, mapBoardRow(row))
	}
	return boardResponseDTO{
		Date: result.Date,
		Bookmaker: bookmakerDTO{
			ID:   result.Bookmaker.ID,
			Name: result.Bookmaker.Name,
		},
		Leagues: result.Leagues,
		Rows:    rows,
	}
}
