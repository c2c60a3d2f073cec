package prescription

import "context"

// Repository is the persistence boundary for prescriptions. GetByID returns
// (nil, nil) when no row exists.
type Repository interface {
	Create(ctx context.Context, pr *Prescription) error
	GetByID(ctx context.Context, id int64) (*Prescription, error)
	List(ctx context.Context) ([]*Prescription, error)
	Update(ctx context.Context, pr *Prescription) error
	Delete(ctx context.Context, id int64) error
}
