package country

import "context"

// Repository exposes country catalog persistence.
type Repository interface {
	UpsertMany(ctx context.Context, items []Country) error
	List(ctx context.Context) ([]Country, error)
}
