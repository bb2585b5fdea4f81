package usecase

import (
	"context"

	"github.com/oddsradar/oddsradar/internal/domain/country"
	"github.com/oddsradar/oddsradar/internal/domain/fixture"
	"github.com/oddsradar/oddsradar/internal/domain/league"
	"github.com/oddsradar/oddsradar/internal/domain/odds"
	"github.com/oddsradar/oddsradar/internal/domain/team"
	"github.com/oddsradar/oddsradar/internal/domain/teamstats"
)

// FootballDataProvider is the upstream football API surface the
// services depend on.
type FootballDataProvider interface {
	FixturesByDate(ctx context.Context, date string) ([]fixture.Fixture, error)
	OddsByDate(ctx context.Context, date string, bookmakerID int64) ([]odds.Payload, error)
	TeamStatistics(ctx context.Context, leagueID, teamID int64, season int) (teamstats.SeasonStats, error)
	Countries(ctx context.Context) ([]country.Country, error)
	Leagues(ctx context.Context) ([]league.League, error)
	TeamsByLeague(ctx context.Context, leagueID int64, season int) ([]team.Team, error)
	TeamByID(ctx context.Context, teamID int64) (team.Team, error)
}
