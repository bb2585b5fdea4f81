package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/oddsradar/oddsradar/internal/domain/country"
	"github.com/oddsradar/oddsradar/internal/domain/fixture"
	"github.com/oddsradar/oddsradar/internal/domain/league"
	"github.com/oddsradar/oddsradar/internal/domain/odds"
	"github.com/oddsradar/oddsradar/internal/domain/team"
	"github.com/oddsradar/oddsradar/internal/domain/teamstats"
	"github.com/oddsradar/oddsradar/internal/platform/cache"
	"github.com/oddsradar/oddsradar/internal/platform/logging"
)

type fakeProvider struct {
	fixtures     []fixture.Fixture
	fixturesErr  error
	payloads     []odds.Payload
	oddsErr      error
	stats        map[int64]teamstats.SeasonStats
	statsErr     error
	countries    []country.Country
	leagues      []league.League
	teamsByLg    map[int64][]team.Team
	teamsErr     error
	fixtureCalls atomic.Int32
	oddsCalls    atomic.Int32
	statsCalls   atomic.Int32
}

func (p *fakeProvider) FixturesByDate(context.Context, string) ([]fixture.Fixture, error) {
	p.fixtureCalls.Add(1)
	return p.fixtures, p.fixturesErr
}

func (p *fakeProvider) OddsByDate(context.Context, string, int64) ([]odds.Payload, error) {
	p.oddsCalls.Add(1)
	return p.payloads, p.oddsErr
}

func (p *fakeProvider) TeamStatistics(_ context.Context, _ int64, teamID int64, _ int) (teamstats.SeasonStats, error) {
	p.statsCalls.Add(1)
	if p.statsErr != nil {
		return teamstats.SeasonStats{}, p.statsErr
	}
	return p.stats[teamID], nil
}

func (p *fakeProvider) Countries(context.Context) ([]country.Country, error) {
	return p.countries, nil
}

func (p *fakeProvider) Leagues(context.Context) ([]league.League, error) {
	return p.leagues, nil
}

func (p *fakeProvider) TeamsByLeague(_ context.Context, leagueID int64, _ int) ([]team.Team, error) {
	if p.teamsErr != nil {
		return nil, p.teamsErr
	}
	return p.teamsByLg[leagueID], nil
}

func (p *fakeProvider) TeamByID(_ context.Context, teamID int64) (team.Team, error) {
	return team.Team{ID: teamID}, nil
}

func boardFixture(id int64, leagueName string) fixture.Fixture {
	return fixture.Fixture{
		ID:           id,
		LeagueID:     71,
		LeagueName:   leagueName,
		Season:       2026,
		KickoffAt:    time.Date(2026, time.September, 1, 19, 0, 0, 0, time.UTC),
		HomeTeamID:   id * 10,
		AwayTeamID:   id*10 + 1,
		HomeTeamName: "Home",
		AwayTeamName: "Away",
		Status:       fixture.StatusNotStarted,
	}
}

func testBookmakers() map[int64]string {
	return map[int64]string{8: "Bet365", 32: "Betano", 3: "Betfair"}
}

func TestBoardService_Get(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		fixtures: []fixture.Fixture{
			boardFixture(100, "Serie A"),
			boardFixture(101, "Serie B"),
		},
	}
	svc := NewBoardService(BoardServiceConfig{
		Provider:           provider,
		Cache:              cache.NewStore(),
		Logger:             logging.NewNop(),
		Bookmakers:         testBookmakers(),
		DefaultBookmakerID: 8,
	})

	result, err := svc.Get(context.Background(), BoardQuery{Date: "2026-09-01"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(result.Rows))
	}
	if result.Bookmaker.ID != 8 || result.Bookmaker.Name != "Bet365" {
		t.Fatalf("unexpected bookmaker: %+v", result.Bookmaker)
	}
	if len(result.Leagues) != 2 || result.Leagues[0] != "Serie A" || result.Leagues[1] != "Serie B" {
		t.Fatalf("unexpected leagues: %v", result.Leagues)
	}
}

func TestBoardService_GetCachesProviderSnapshots(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{fixtures: []fixture.Fixture{boardFixture(100, "Serie A")}}
	svc := NewBoardService(BoardServiceConfig{
		Provider:           provider,
		Logger:             logging.NewNop(),
		Bookmakers:         testBookmakers(),
		DefaultBookmakerID: 8,
	})

	for i := 0; i < 3; i++ {
		if _, err := svc.Get(context.Background(), BoardQuery{Date: "2026-09-01"}); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
	}

	if got := provider.fixtureCalls.Load(); got != 1 {
		t.Fatalf("fixtures fetched %d times, want 1", got)
	}
	if got := provider.oddsCalls.Load(); got != 1 {
		t.Fatalf("odds fetched %d times, want 1", got)
	}
}

func TestBoardService_FlushCacheForcesRefetch(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{fixtures: []fixture.Fixture{boardFixture(100, "Serie A")}}
	svc := NewBoardService(BoardServiceConfig{
		Provider:           provider,
		Logger:             logging.NewNop(),
		Bookmakers:         testBookmakers(),
		DefaultBookmakerID: 8,
	})

	if _, err := svc.Get(context.Background(), BoardQuery{Date: "2026-09-01"}); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if evicted := svc.FlushCache(); evicted != 2 {
		t.Fatalf("FlushCache() = %d, want 2 entries evicted", evicted)
	}
	if _, err := svc.Get(context.Background(), BoardQuery{Date: "2026-09-01"}); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got := provider.fixtureCalls.Load(); got != 2 {
		t.Fatalf("fixtures fetched %d times after flush, want 2", got)
	}
}

func TestBoardService_GetRejectsBadInput(t *testing.T) {
	t.Parallel()

	svc := NewBoardService(BoardServiceConfig{
		Provider:           &fakeProvider{},
		Logger:             logging.NewNop(),
		Bookmakers:         testBookmakers(),
		DefaultBookmakerID: 8,
	})

	if _, err := svc.Get(context.Background(), BoardQuery{Date: "01-09-2026"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad date error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Get(context.Background(), BoardQuery{Date: "2026-09-01", BookmakerID: 999}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown bookmaker error = %v, want ErrInvalidInput", err)
	}
}

func TestBoardService_GetPropagatesProviderFailure(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{fixturesErr: errors.New("upstream down")}
	svc := NewBoardService(BoardServiceConfig{
		Provider:           provider,
		Logger:             logging.NewNop(),
		Bookmakers:         testBookmakers(),
		DefaultBookmakerID: 8,
	})

	if _, err := svc.Get(context.Background(), BoardQuery{Date: "2026-09-01"}); err == nil {
		t.Fatalf("expected provider failure to propagate")
	}
}

func TestBoardService_Bookmakers(t *testing.T) {
	t.Parallel()

	svc := NewBoardService(BoardServiceConfig{
		Provider:           &fakeProvider{},
		Logger:             logging.NewNop(),
		Bookmakers:         testBookmakers(),
		DefaultBookmakerID: 8,
	})

	got := svc.Bookmakers()
	if len(got) != 3 {
		t.Fatalf("got %d bookmakers, want 3", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 8 || got[2].ID != 32 {
		t.Fatalf("bookmakers not sorted by id: %+v", got)
	}
}
