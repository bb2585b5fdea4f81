package usecase

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/oddsradar/oddsradar/internal/domain/country"
	"github.com/oddsradar/oddsradar/internal/domain/fixture"
	"github.com/oddsradar/oddsradar/internal/domain/league"
	"github.com/oddsradar/oddsradar/internal/domain/team"
	"github.com/oddsradar/oddsradar/internal/platform/logging"
)

type fakeCountryRepo struct {
	upserted []country.Country
}

func (r *fakeCountryRepo) UpsertMany(_ context.Context, countries []country.Country) error {
	r.upserted = append(r.upserted, countries...)
	return nil
}

func (r *fakeCountryRepo) List(context.Context) ([]country.Country, error) {
	return r.upserted, nil
}

type fakeLeagueRepo struct {
	stored   []league.League
	upserted []league.League
}

func (r *fakeLeagueRepo) UpsertMany(_ context.Context, leagues []league.League) error {
	r.upserted = append(r.upserted, leagues...)
	return nil
}

func (r *fakeLeagueRepo) Exists(_ context.Context, id int64) (bool, error) {
	for _, l := range r.stored {
		if l.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLeagueRepo) List(context.Context) ([]league.League, error) {
	return r.stored, nil
}

type fakeTeamRepo struct {
	stored   []int64
	upserted []team.Team
	err      error
}

func (r *fakeTeamRepo) UpsertMany(_ context.Context, teams []team.Team) error {
	if r.err != nil {
		return r.err
	}
	r.upserted = append(r.upserted, teams...)
	return nil
}

func (r *fakeTeamRepo) ExistingIDs(_ context.Context, ids []int64) (map[int64]struct{}, error) {
	out := make(map[int64]struct{})
	for _, stored := range r.stored {
		for _, id := range ids {
			if id == stored {
				out[id] = struct{}{}
			}
		}
	}
	return out, nil
}

type fakeFixtureRepo struct {
	upserted []fixture.Fixture
}

func (r *fakeFixtureRepo) UpsertMany(_ context.Context, fixtures []fixture.Fixture) error {
	r.upserted = append(r.upserted, fixtures...)
	return nil
}

func (r *fakeFixtureRepo) ListByDate(context.Context, string) ([]fixture.Fixture, error) {
	return r.upserted, nil
}

func TestSyncService_SyncCountries(t *testing.T) {
	t.Parallel()

	repo := &fakeCountryRepo{}
	svc := NewSyncService(SyncServiceConfig{
		Provider:  &fakeProvider{countries: []country.Country{{Code: "BR", Name: "Brazil"}}},
		Countries: repo,
		Logger:    logging.NewNop(),
	})

	result, err := svc.SyncCountries(context.Background())
	if err != nil {
		t.Fatalf("SyncCountries() error = %v", err)
	}
	if result.Synced != 1 || len(repo.upserted) != 1 {
		t.Fatalf("synced=%d upserted=%d, want 1/1", result.Synced, len(repo.upserted))
	}
}

func TestSyncService_SyncTeamsSkipsFailedLeagues(t *testing.T) {
	t.Parallel()

	leagueRepo := &fakeLeagueRepo{stored: []league.League{
		{ID: 71, Name: "Serie A", Season: 2026},
		{ID: 72, Name: "Serie B", Season: 2026},
		{ID: 73, Name: "No Season"},
	}}
	teamRepo := &fakeTeamRepo{}
	provider := &fakeProvider{teamsByLg: map[int64][]team.Team{
		71: {{ID: 127, Name: "Flamengo"}, {ID: 128, Name: "Palmeiras"}},
		72: {{ID: 127, Name: "Flamengo"}},
	}}

	svc := NewSyncService(SyncServiceConfig{
		Provider: provider,
		Leagues:  leagueRepo,
		Teams:    teamRepo,
		Logger:   logging.NewNop(),
	})

	result, err := svc.SyncTeams(context.Background())
	if err != nil {
		t.Fatalf("SyncTeams() error = %v", err)
	}
	// Team 127 appears in both leagues and must be stored once.
	if result.Synced != 2 {
		t.Fatalf("synced = %d, want 2 deduped teams", result.Synced)
	}
	if len(teamRepo.upserted) != 2 {
		t.Fatalf("upserted %d teams, want 2", len(teamRepo.upserted))
	}
}

func TestSyncService_SyncFixtures(t *testing.T) {
	t.Parallel()

	repo := &fakeFixtureRepo{}
	leagueRepo := &fakeLeagueRepo{stored: []league.League{{ID: 71, Name: "Serie A", Season: 2026}}}
	teamRepo := &fakeTeamRepo{}
	svc := NewSyncService(SyncServiceConfig{
		Provider: &fakeProvider{fixtures: []fixture.Fixture{boardFixture(100, "Serie A")}},
		Leagues:  leagueRepo,
		Teams:    teamRepo,
		Fixtures: repo,
		Logger:   logging.NewNop(),
	})

	result, err := svc.SyncFixtures(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("SyncFixtures() error = %v", err)
	}
	if result.Synced != 1 || len(repo.upserted) != 1 {
		t.Fatalf("synced=%d upserted=%d, want 1/1", result.Synced, len(repo.upserted))
	}
	// Both fixture teams were unknown and must be backfilled.
	if len(teamRepo.upserted) != 2 {
		t.Fatalf("backfilled %d teams, want 2", len(teamRepo.upserted))
	}
	if len(leagueRepo.upserted) != 0 {
		t.Fatalf("league 71 already stored, expected no league upsert, got %d", len(leagueRepo.upserted))
	}
}

func TestSyncService_SyncFixturesSkipsStoredTeams(t *testing.T) {
	t.Parallel()

	teamRepo := &fakeTeamRepo{stored: []int64{1000}}
	svc := NewSyncService(SyncServiceConfig{
		Provider: &fakeProvider{fixtures: []fixture.Fixture{boardFixture(100, "Serie A")}},
		Leagues:  &fakeLeagueRepo{stored: []league.League{{ID: 71, Name: "Serie A", Season: 2026}}},
		Teams:    teamRepo,
		Fixtures: &fakeFixtureRepo{},
		Logger:   logging.NewNop(),
	})

	if _, err := svc.SyncFixtures(context.Background(), "2026-09-01"); err != nil {
		t.Fatalf("SyncFixtures() error = %v", err)
	}
	if len(teamRepo.upserted) != 1 || teamRepo.upserted[0].ID != 1001 {
		t.Fatalf("expected only the unknown team backfilled, got %+v", teamRepo.upserted)
	}
}

func TestSyncService_SyncFixturesBackfillsMissingLeague(t *testing.T) {
	t.Parallel()

	leagueRepo := &fakeLeagueRepo{}
	svc := NewSyncService(SyncServiceConfig{
		Provider: &fakeProvider{
			fixtures: []fixture.Fixture{boardFixture(100, "Serie A")},
			leagues:  []league.League{{ID: 71, Name: "Serie A", Season: 2026}, {ID: 72, Name: "Serie B"}},
		},
		Leagues:  leagueRepo,
		Teams:    &fakeTeamRepo{},
		Fixtures: &fakeFixtureRepo{},
		Logger:   logging.NewNop(),
	})

	if _, err := svc.SyncFixtures(context.Background(), "2026-09-01"); err != nil {
		t.Fatalf("SyncFixtures() error = %v", err)
	}
	// Only the referenced league is backfilled, not the whole catalog.
	if len(leagueRepo.upserted) != 1 || leagueRepo.upserted[0].ID != 71 {
		t.Fatalf("unexpected league backfill: %+v", leagueRepo.upserted)
	}
}

func TestSyncService_SyncFixturesRejectsBadDate(t *testing.T) {
	t.Parallel()

	svc := NewSyncService(SyncServiceConfig{
		Provider: &fakeProvider{},
		Fixtures: &fakeFixtureRepo{},
		Logger:   logging.NewNop(),
	})

	if _, err := svc.SyncFixtures(context.Background(), "yesterday"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestSyncService_SyncTeamsUpsertFailure(t *testing.T) {
	t.Parallel()

	svc := NewSyncService(SyncServiceConfig{
		Provider: &fakeProvider{teamsByLg: map[int64][]team.Team{71: {{ID: 127, Name: "Flamengo"}}}},
		Leagues:  &fakeLeagueRepo{stored: []league.League{{ID: 71, Season: 2026}}},
		Teams:    &fakeTeamRepo{err: errors.New("db down")},
		Logger:   logging.NewNop(),
	})

	if _, err := svc.SyncTeams(context.Background()); err == nil {
		t.Fatalf("expected upsert failure to propagate")
	}
}
