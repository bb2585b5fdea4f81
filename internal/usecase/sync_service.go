package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/oddsradar/oddsradar/internal/domain/country"
	"github.com/oddsradar/oddsradar/internal/domain/fixture"
	"github.com/oddsradar/oddsradar/internal/domain/league"
	"github.com/oddsradar/oddsradar/internal/domain/team"
	"github.com/oddsradar/oddsradar/internal/platform/logging"
)

const defaultSyncWorkers = 4

type SyncServiceConfig struct {
	Provider    FootballDataProvider
	Countries   country.Repository
	Leagues     league.Repository
	Teams       team.Repository
	Fixtures    fixture.Repository
	Logger      *logging.Logger
	WorkerCount int
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	Synced     int   `json:"synced"`
	DurationMs int64 `json:"durationMs"`
}

// SyncService mirrors provider reference data into Postgres so board
// reads and exports can join against stable local rows.
type SyncService struct {
	provider    FootballDataProvider
	countryRepo country.Repository
	leagueRepo  league.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	logger      *logging.Logger
	workerCount int
}

func NewSyncService(cfg SyncServiceConfig) *SyncService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.WorkerCount
	if workers <= 0 {
		workers = defaultSyncWorkers
	}

	return &SyncService{
		provider:    cfg.Provider,
		countryRepo: cfg.Countries,
		leagueRepo:  cfg.Leagues,
		teamRepo:    cfg.Teams,
		fixtureRepo: cfg.Fixtures,
		logger:      logger,
		workerCount: workers,
	}
}

func (s *SyncService) SyncCountries(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncCountries")
	defer span.End()
	start := time.Now()

	countries, err := s.provider.Countries(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch countries: %w", err)
	}
	if err := s.countryRepo.UpsertMany(ctx, countries); err != nil {
		return SyncResult{}, fmt.Errorf("upsert countries: %w", err)
	}

	s.logger.InfoContext(ctx, "countries synced", logging.Int("count", len(countries)))
	return SyncResult{Synced: len(countries), DurationMs: time.Since(start).Milliseconds()}, nil
}

func (s *SyncService) SyncLeagues(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncLeagues")
	defer span.End()
	start := time.Now()

	leagues, err := s.provider.Leagues(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch leagues: %w", err)
	}
	if err := s.leagueRepo.UpsertMany(ctx, leagues); err != nil {
		return SyncResult{}, fmt.Errorf("upsert leagues: %w", err)
	}

	s.logger.InfoContext(ctx, "leagues synced", logging.Int("count", len(leagues)))
	return SyncResult{Synced: len(leagues), DurationMs: time.Since(start).Milliseconds()}, nil
}

// SyncTeams fetches the squads of every stored league concurrently and
// upserts them. A league whose fetch fails is logged and skipped so one
// bad league does not abort the whole run.
func (s *SyncService) SyncTeams(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncTeams")
	defer span.End()
	start := time.Now()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("list leagues: %w", err)
	}

	var mu sync.Mutex
	collected := make([]team.Team, 0, len(leagues)*20)

	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.workerCount)
	for _, item := range leagues {
		item := item
		if item.Season <= 0 {
			continue
		}
		p.Go(func(ctx context.Context) error {
			teams, err := s.provider.TeamsByLeague(ctx, item.ID, item.Season)
			if err != nil {
				s.logger.WarnContext(ctx, "teams fetch failed, skipping league",
					logging.Int64("league_id", item.ID),
					logging.Err(err),
				)
				return nil
			}
			mu.Lock()
			collected = append(collected, teams...)
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return SyncResult{}, fmt.Errorf("sync teams: %w", err)
	}

	collected = dedupeTeams(collected)
	if err := s.teamRepo.UpsertMany(ctx, collected); err != nil {
		return SyncResult{}, fmt.Errorf("upsert teams: %w", err)
	}

	s.logger.InfoContext(ctx, "teams synced",
		logging.Int("leagues", len(leagues)),
		logging.Int("count", len(collected)),
	)
	return SyncResult{Synced: len(collected), DurationMs: time.Since(start).Milliseconds()}, nil
}

func (s *SyncService) SyncFixtures(ctx context.Context, date string) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncFixtures")
	defer span.End()
	start := time.Now()

	if _, err := time.Parse(boardDateLayout, date); err != nil {
		return SyncResult{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	fixtures, err := s.provider.FixturesByDate(ctx, date)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch fixtures: %w", err)
	}
	if err := s.ensureLeagues(ctx, fixtures); err != nil {
		return SyncResult{}, err
	}
	if err := s.ensureTeams(ctx, fixtures); err != nil {
		return SyncResult{}, err
	}
	if err := s.fixtureRepo.UpsertMany(ctx, fixtures); err != nil {
		return SyncResult{}, fmt.Errorf("upsert fixtures: %w", err)
	}

	s.logger.InfoContext(ctx, "fixtures synced",
		logging.String("date", date),
		logging.Int("count", len(fixtures)),
	)
	return SyncResult{Synced: len(fixtures), DurationMs: time.Since(start).Milliseconds()}, nil
}

// ensureLeagues upserts any league a fixture references that is not
// stored yet, so fixture rows never point at a missing league.
func (s *SyncService) ensureLeagues(ctx context.Context, fixtures []fixture.Fixture) error {
	missing := make(map[int64]struct{})
	for _, f := range fixtures {
		if f.LeagueID <= 0 {
			continue
		}
		if _, seen := missing[f.LeagueID]; seen {
			continue
		}
		known, err := s.leagueRepo.Exists(ctx, f.LeagueID)
		if err != nil {
			return fmt.Errorf("check league %d: %w", f.LeagueID, err)
		}
		if !known {
			missing[f.LeagueID] = struct{}{}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	all, err := s.provider.Leagues(ctx)
	if err != nil {
		return fmt.Errorf("fetch leagues for fixtures: %w", err)
	}
	toInsert := make([]league.League, 0, len(missing))
	for _, item := range all {
		if _, ok := missing[item.ID]; ok {
			toInsert = append(toInsert, item)
		}
	}
	if err := s.leagueRepo.UpsertMany(ctx, toInsert); err != nil {
		return fmt.Errorf("upsert referenced leagues: %w", err)
	}
	return nil
}

// ensureTeams fetches and upserts teams referenced by the fixtures that
// are not stored yet. A single team lookup failure is logged and skipped.
func (s *SyncService) ensureTeams(ctx context.Context, fixtures []fixture.Fixture) error {
	ids := make([]int64, 0, len(fixtures)*2)
	seen := make(map[int64]struct{}, len(fixtures)*2)
	for _, f := range fixtures {
		for _, id := range []int64{f.HomeTeamID, f.AwayTeamID} {
			if id <= 0 {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	known, err := s.teamRepo.ExistingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("check stored teams: %w", err)
	}

	toInsert := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			continue
		}
		item, err := s.provider.TeamByID(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "team lookup failed, skipping",
				logging.Int64("team_id", id),
				logging.Err(err),
			)
			continue
		}
		toInsert = append(toInsert, item)
	}
	if err := s.teamRepo.UpsertMany(ctx, toInsert); err != nil {
		return fmt.Errorf("upsert referenced teams: %w", err)
	}
	return nil
}

func dedupeTeams(teams []team.Team) []team.Team {
	seen := make(map[int64]struct{}, len(teams))
	out := teams[:0]
	for _, t := range teams {
		if t.ID <= 0 {
			continue
		}
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}
