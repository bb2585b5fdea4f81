package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oddsradar/oddsradar/internal/domain/fixture"
	qb "github.com/oddsradar/oddsradar/internal/platform/querybuilder"
)

const fixtureDateLayout = "2006-01-02"

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) UpsertMany(ctx context.Context, items []fixture.Fixture) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert fixtures: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := fixtureInsertModel{
			ID:           item.ID,
			LeagueID:     item.LeagueID,
			LeagueName:   item.LeagueName,
			Country:      item.Country,
			Season:       item.Season,
			KickoffAt:    nullableTime(item.KickoffAt),
			KickoffRaw:   item.KickoffRaw,
			KickoffDate:  kickoffDate(item),
			HomeTeamID:   item.HomeTeamID,
			AwayTeamID:   item.AwayTeamID,
			HomeTeamName: item.HomeTeamName,
			AwayTeamName: item.AwayTeamName,
			Status:       item.Status,
		}

		query, args, err := qb.InsertModel("fixtures", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    league_name = EXCLUDED.league_name,
    country = EXCLUDED.country,
    season = EXCLUDED.season,
    kickoff_at = EXCLUDED.kickoff_at,
    kickoff_raw = EXCLUDED.kickoff_raw,
    kickoff_date = EXCLUDED.kickoff_date,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    home_team_name = EXCLUDED.home_team_name,
    away_team_name = EXCLUDED.away_team_name,
    status = EXCLUDED.status,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert fixture query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert fixture id=%d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert fixtures tx: %w", err)
	}
	return nil
}

func (r *FixtureRepository) ListByDate(ctx context.Context, date string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(
		"id", "league_id", "league_name", "country", "season",
		"kickoff_at", "kickoff_raw", "kickoff_date",
		"home_team_id", "away_team_id", "home_team_name", "away_team_name",
		"status", "created_at", "updated_at",
	).
		From("fixtures").
		Where(qb.Eq("kickoff_date", date)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by date query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by date: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Fixture{
			ID:           row.ID,
			LeagueID:     row.LeagueID,
			LeagueName:   row.LeagueName,
			Country:      row.Country,
			Season:       row.Season,
			KickoffAt:    timeOrZero(row.KickoffAt),
			KickoffRaw:   row.KickoffRaw,
			HomeTeamID:   row.HomeTeamID,
			AwayTeamID:   row.AwayTeamID,
			HomeTeamName: row.HomeTeamName,
			AwayTeamName: row.AwayTeamName,
			Status:       row.Status,
		})
	}
	return out, nil
}

// kickoffDate derives the UTC calendar date used for day-level lookups.
// Fixtures with an unparseable kickoff keep the raw-string prefix when
// it already looks like a date.
func kickoffDate(item fixture.Fixture) string {
	if !item.KickoffAt.IsZero() {
		return item.KickoffAt.UTC().Format(fixtureDateLayout)
	}
	if len(item.KickoffRaw) >= len(fixtureDateLayout) {
		return item.KickoffRaw[:len(fixtureDateLayout)]
	}
	return ""
}
