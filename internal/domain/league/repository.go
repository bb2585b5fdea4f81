package league

import "context"

// Repository exposes league catalog persistence.
type Repository interface {
	UpsertMany(ctx context.Context, items []League) error
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]League, error)
}
