package department

import "context"

// Repository is the persistence boundary for departments. GetByID returns
// (nil, nil) when no row exists; "not found" decisions belong to the service.
type Repository interface {
	Create(ctx context.Context, dep *Department) error
	GetByID(ctx context.Context, id int64) (*Department, error)
	List(ctx context.Context) ([]*Department, error)
	Update(ctx context.Context, dep *Department) error
	Delete(ctx context.Context, id int64) error
	CountByLocation(ctx context.Context, locationID int64) (int64, error)
}
