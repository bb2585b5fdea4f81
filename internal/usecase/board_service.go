package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/oddsradar/oddsradar/internal/domain/board"
	"github.com/oddsradar/oddsradar/internal/domain/fixture"
	"github.com/oddsradar/oddsradar/internal/domain/odds"
	"github.com/oddsradar/oddsradar/internal/platform/cache"
	"github.com/oddsradar/oddsradar/internal/platform/logging"
)

const boardDateLayout = "2006-01-02"

// Bookmaker is a configured odds source offered to clients.
type Bookmaker struct {
	ID   int64
	Name string
}

type BoardQuery struct {
	// Date in YYYY-MM-DD form. Required.
	Date string
	// League filters rows by exact league name. Empty or "all" keeps
	// every league.
	League string
	// BookmakerID selects the odds source. Zero picks the configured
	// default.
	BookmakerID int64
	// RequireGoalOdds drops rows missing either over-goals price.
	RequireGoalOdds bool
}

type BoardResult struct {
	Date      string
	Bookmaker Bookmaker
	Rows      []board.Row
	// Leagues lists the distinct league names on the date, before the
	// league filter, for populating filter choices.
	Leagues []string
}

type BoardServiceConfig struct {
	Provider           FootballDataProvider
	Cache              *cache.Store
	Logger             *logging.Logger
	Bookmakers         map[int64]string
	DefaultBookmakerID int64
	FixturesTTL        time.Duration
	OddsTTL            time.Duration
}

// BoardService assembles the daily fixtures board with bookmaker odds.
type BoardService struct {
	provider           FootballDataProvider
	cache              *cache.Store
	logger             *logging.Logger
	bookmakers         map[int64]string
	defaultBookmakerID int64
	fixturesTTL        time.Duration
	oddsTTL            time.Duration
}

func NewBoardService(cfg BoardServiceConfig) *BoardService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	store := cfg.Cache
	if store == nil {
		store = cache.NewStore()
	}
	if cfg.FixturesTTL <= 0 {
		cfg.FixturesTTL = 10 * time.Minute
	}
	if cfg.OddsTTL <= 0 {
		cfg.OddsTTL = 10 * time.Minute
	}

	return &BoardService{
		provider:           cfg.Provider,
		cache:              store,
		logger:             logger,
		bookmakers:         cfg.Bookmakers,
		defaultBookmakerID: cfg.DefaultBookmakerID,
		fixturesTTL:        cfg.FixturesTTL,
		oddsTTL:            cfg.OddsTTL,
	}
}

// Bookmakers returns the configured odds sources sorted by id.
func (s *BoardService) Bookmakers() []Bookmaker {
	out := make([]Bookmaker, 0, len(s.bookmakers))
	for id, name := range s.bookmakers {
		out = append(out, Bookmaker{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get builds the board for a date. Fixtures and odds snapshots are
// cached per date and bookmaker so repeated reads within the TTL do not
// hit the provider.
func (s *BoardService) Get(ctx context.Context, query BoardQuery) (BoardResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.Get")
	defer span.End()

	if _, err := time.Parse(boardDateLayout, query.Date); err != nil {
		return BoardResult{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	bookmaker, err := s.resolveBookmaker(query.BookmakerID)
	if err != nil {
		return BoardResult{}, err
	}

	fixtures, err := s.fixturesForDate(ctx, query.Date)
	if err != nil {
		return BoardResult{}, err
	}
	payloads, err := s.oddsForDate(ctx, query.Date, bookmaker.ID)
	if err != nil {
		return BoardResult{}, err
	}

	rows := board.BuildRows(fixtures, payloads, board.BuildOptions{
		League:          query.League,
		RequireGoalOdds: query.RequireGoalOdds,
		Warn: func(fixtureID int64, reason string) {
			s.logger.WarnContext(ctx, "skipping malformed fixture",
				logging.Int64("fixture_id", fixtureID),
				logging.String("reason", reason),
			)
		},
	})

	return BoardResult{
		Date:      query.Date,
		Bookmaker: bookmaker,
		Rows:      rows,
		Leagues:   distinctLeagues(fixtures),
	}, nil
}

// FlushCache drops every cached snapshot and returns the evicted count.
func (s *BoardService) FlushCache() int {
	return s.cache.Flush()
}

func (s *BoardService) resolveBookmaker(id int64) (Bookmaker, error) {
	if id == 0 {
		id = s.defaultBookmakerID
	}
	name, ok := s.bookmakers[id]
	if !ok {
		return Bookmaker{}, fmt.Errorf("%w: unknown bookmaker id %d", ErrInvalidInput, id)
	}
	return Bookmaker{ID: id, Name: name}, nil
}

func (s *BoardService) fixturesForDate(ctx context.Context, date string) ([]fixture.Fixture, error) {
	key := "fixtures:" + date
	v, err := s.cache.GetOrLoad(ctx, key, s.fixturesTTL, func(ctx context.Context) (any, error) {
		return s.provider.FixturesByDate(ctx, date)
	})
	if err != nil {
		return nil, fmt.Errorf("load fixtures date=%s: %w", date, err)
	}
	fixtures, ok := v.([]fixture.Fixture)
	if !ok {
		return nil, fmt.Errorf("unexpected cached fixtures type %T", v)
	}
	return fixtures, nil
}

func (s *BoardService) oddsForDate(ctx context.Context, date string, bookmakerID int64) ([]odds.Payload, error) {
	key := "odds:" + date + ":" + strconv.FormatInt(bookmakerID, 10)
	v, err := s.cache.GetOrLoad(ctx, key, s.oddsTTL, func(ctx context.Context) (any, error) {
		return s.provider.OddsByDate(ctx, date, bookmakerID)
	})
	if err != nil {
		return nil, fmt.Errorf("load odds date=%s bookmaker=%d: %w", date, bookmakerID, err)
	}
	payloads, ok := v.([]odds.Payload)
	if !ok {
		return nil, fmt.Errorf("unexpected cached odds type %T", v)
	}
	return payloads, nil
}

func distinctLeagues(fixtures []fixture.Fixture) []string {
	seen := make(map[string]struct{}, len(fixtures))
	out := make([]string, 0, len(fixtures))
	for _, f := range fixtures {
		name := strings.TrimSpace(f.LeagueName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
