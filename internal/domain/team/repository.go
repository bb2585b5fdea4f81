package team

import "context"

// Repository exposes team catalog persistence.
type Repository interface {
	UpsertMany(ctx context.Context, items []Team) error
	// ExistingIDs reports which of the given team ids are stored.
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error)
}
