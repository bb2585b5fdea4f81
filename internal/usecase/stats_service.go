package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	ants "github.com/panjf2000/ants/v2"

	"github.com/oddsradar/oddsradar/internal/domain/fixture"
	"github.com/oddsradar/oddsradar/internal/domain/teamstats"
	"github.com/oddsradar/oddsradar/internal/platform/cache"
	"github.com/oddsradar/oddsradar/internal/platform/logging"
)

const defaultStatsWorkers = 8

type StatsServiceConfig struct {
	Provider    FootballDataProvider
	Cache       *cache.Store
	Logger      *logging.Logger
	WorkerCount int
	StatsTTL    time.Duration
}

// StatsService enriches board fixtures with both teams' season records.
// Each fixture needs two provider calls, so the fan-out runs on a
// bounded worker pool.
type StatsService struct {
	provider    FootballDataProvider
	cache       *cache.Store
	logger      *logging.Logger
	workerCount int
	statsTTL    time.Duration
}

func NewStatsService(cfg StatsServiceConfig) *StatsService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	store := cfg.Cache
	if store == nil {
		store = cache.NewStore()
	}
	workers := cfg.WorkerCount
	if workers <= 0 {
		workers = defaultStatsWorkers
	}
	if cfg.StatsTTL <= 0 {
		cfg.StatsTTL = 30 * time.Minute
	}

	return &StatsService{
		provider:    cfg.Provider,
		cache:       store,
		logger:      logger,
		workerCount: workers,
		statsTTL:    cfg.StatsTTL,
	}
}

// EnrichFixtures fetches season statistics for both sides of every
// fixture and returns display pairs keyed by fixture id. A fixture
// whose stats cannot be fetched is logged and omitted; the rest of the
// board still gets its numbers.
func (s *StatsService) EnrichFixtures(ctx context.Context, fixtures []fixture.Fixture) (map[int64]teamstats.StatsPair, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.EnrichFixtures")
	defer span.End()

	if len(fixtures) == 0 {
		return map[int64]teamstats.StatsPair{}, nil
	}

	type result struct {
		fixtureID int64
		pair      teamstats.StatsPair
		err       error
	}

	pool, err := ants.NewPool(s.workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan result, len(fixtures))
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, item := range fixtures {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			home, homeErr := s.statsForTeam(ctx, item.LeagueID, item.HomeTeamID, item.Season)
			away, awayErr := s.statsForTeam(ctx, item.LeagueID, item.AwayTeamID, item.Season)
			if homeErr != nil || awayErr != nil {
				failedCount.Add(1)
				results <- result{fixtureID: item.ID, err: firstErr(homeErr, awayErr)}
				return
			}
			results <- result{fixtureID: item.ID, pair: teamstats.BuildPair(home, away)}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit stats task: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make(map[int64]teamstats.StatsPair, len(fixtures))
	for r := range results {
		if r.err != nil {
			s.logger.WarnContext(ctx, "team statistics fetch failed",
				logging.Int64("fixture_id", r.fixtureID),
				logging.Err(r.err),
			)
			continue
		}
		out[r.fixtureID] = r.pair
	}

	if failed := failedCount.Load(); failed > 0 {
		s.logger.WarnContext(ctx, "stats enrichment finished with failures",
			logging.Int("fixtures", len(fixtures)),
			logging.Int("failed", int(failed)),
		)
	}
	return out, nil
}

func (s *StatsService) statsForTeam(ctx context.Context, leagueID, teamID int64, season int) (teamstats.SeasonStats, error) {
	key := "teamstats:" + strconv.FormatInt(leagueID, 10) + ":" + strconv.FormatInt(teamID, 10) + ":" + strconv.Itoa(season)
	v, err := s.cache.GetOrLoad(ctx, key, s.statsTTL, func(ctx context.Context) (any, error) {
		return s.provider.TeamStatistics(ctx, leagueID, teamID, season)
	})
	if err != nil {
		return teamstats.SeasonStats{}, err
	}
	stats, ok := v.(teamstats.SeasonStats)
	if !ok {
		return teamstats.SeasonStats{}, fmt.Errorf("unexpected cached stats type %T", v)
	}
	return stats, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
