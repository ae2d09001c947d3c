package schedule

import "context"

// Repository stores one immutable schedule per cup, keyed by cup number.
type Repository interface {
	GetByCup(ctx context.Context, cupNumber int) (Schedule, bool, error)
	Save(ctx context.Context, cupNumber int, s Schedule) error
	ListCups(ctx context.Context) ([]int, error)
}
