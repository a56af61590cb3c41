package dataset

import "context"

// Repository describes dataset persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, d Dataset) error
	GetByID(ctx context.Context, id string) (Dataset, bool, error)
	List(ctx context.Context) ([]Dataset, error)
}
