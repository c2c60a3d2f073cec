package location

import "context"

// Repository is the persistence boundary for locations. GetByID returns
// (nil, nil) when no row exists; "not found" decisions belong to the service.
type Repository interface {
	Create(ctx context.Context, loc *Location) error
	GetByID(ctx context.Context, id int64) (*Location, error)
	List(ctx context.Context) ([]*Location, error)
	Update(ctx context.Context, loc *Location) error
	Delete(ctx context.Context, id int64) error
}
