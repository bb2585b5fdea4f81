package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oddsradar/oddsradar/internal/domain/country"
	qb "github.com/oddsradar/oddsradar/internal/platform/querybuilder"
)

type CountryRepository struct {
	db *sqlx.DB
}

func NewCountryRepository(db *sqlx.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) UpsertMany(ctx context.Context, items []country.Country) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert countries: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := countryInsertModel{
			Code:    item.Code,
			Name:    item.Name,
			FlagURL: item.FlagURL,
		}

		query, args, err := qb.InsertModel("countries", insertModel, `ON CONFLICT (name)
DO UPDATE SET
    code = EXCLUDED.code,
    flag_url = EXCLUDED.flag_url,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert country query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert country name=%s: %w", item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert countries tx: %w", err)
	}
	return nil
}

func (r *CountryRepository) List(ctx context.Context) ([]country.Country, error) {
	query, args, err := qb.Select("code", "name", "flag_url", "created_at", "updated_at").
		From("countries").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select countries query: %w", err)
	}

	var rows []countryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select countries: %w", err)
	}

	out := make([]country.Country, 0, len(rows))
	for _, row := range rows {
		out = append(out, country.Country{
			Code:    row.Code,
			Name:    row.Name,
			FlagURL: row.FlagURL,
		})
	}
	return out, nil
}
