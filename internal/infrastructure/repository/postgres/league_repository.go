package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oddsradar/oddsradar/internal/domain/league"
	qb "github.com/oddsradar/oddsradar/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) UpsertMany(ctx context.Context, items []league.League) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert leagues: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := leagueInsertModel{
			ID:      item.ID,
			Name:    item.Name,
			Type:    item.Type,
			Country: item.Country,
			LogoURL: item.LogoURL,
			Season:  item.Season,
		}

		query, args, err := qb.InsertModel("leagues", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    type = EXCLUDED.type,
    country = EXCLUDED.country,
    logo_url = EXCLUDED.logo_url,
    season = EXCLUDED.season,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert league query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert league id=%d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert leagues tx: %w", err)
	}
	return nil
}

func (r *LeagueRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.Select("1").
		From("leagues").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build league exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check league exists id=%d: %w", id, err)
	}
	return true, nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("id", "name", "type", "country", "logo_url", "season", "created_at", "updated_at").
		From("leagues").
		OrderBy("country", "name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.League{
			ID:      row.ID,
			Name:    row.Name,
			Type:    row.Type,
			Country: row.Country,
			LogoURL: row.LogoURL,
			Season:  row.Season,
		})
	}
	return out, nil
}
