package specialisation

import "context"

// Repository is the persistence boundary for specialisations. GetByID
// returns (nil, nil) when no row exists.
type Repository interface {
	Create(ctx context.Context, spec *Specialisation) error
	GetByID(ctx context.Context, id int64) (*Specialisation, error)
	List(ctx context.Context) ([]*Specialisation, error)
	Update(ctx context.Context, spec *Specialisation) error
	Delete(ctx context.Context, id int64) error
}
