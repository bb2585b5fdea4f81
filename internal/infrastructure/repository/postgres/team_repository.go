package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oddsradar/oddsradar/internal/domain/team"
	qb "github.com/oddsradar/oddsradar/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) UpsertMany(ctx context.Context, items []team.Team) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]teamInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, teamInsertModel{
			ID:      item.ID,
			Name:    item.Name,
			Code:    item.Code,
			Country: item.Country,
			Founded: item.Founded,
			LogoURL: item.LogoURL,
		})
	}

	query, args, err := qb.InsertModels("teams", models, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    code = EXCLUDED.code,
    country = EXCLUDED.country,
    founded = EXCLUDED.founded,
    logo_url = EXCLUDED.logo_url,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert teams query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert teams: %w", err)
	}
	return nil
}

func (r *TeamRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error) {
	if len(ids) == 0 {
		return map[int64]struct{}{}, nil
	}

	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	query, args, err := qb.Select("id").
		From("teams").
		Where(qb.In("id", values)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build team ids query: %w", err)
	}

	var found []int64
	if err := r.db.SelectContext(ctx, &found, query, args...); err != nil {
		return nil, fmt.Errorf("select existing team ids: %w", err)
	}

	out := make(map[int64]struct{}, len(found))
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out, nil
}
