package fixture

import "context"

// Repository exposes fixture persistence for the sync jobs.
type Repository interface {
	UpsertMany(ctx context.Context, items []Fixture) error
	ListByDate(ctx context.Context, date string) ([]Fixture, error)
}
