package doctor

import "context"

// Repository is the persistence boundary for doctors. GetByID returns
// (nil, nil) when no row exists.
type Repository interface {
	Create(ctx context.Context, doc *Doctor) error
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	List(ctx context.Context) ([]*Doctor, error)
	Update(ctx context.Context, doc *Doctor) error
	Delete(ctx context.Context, id int64) error
	CountByDepartment(ctx context.Context, departmentID int64) (int64, error)
	CountBySpecialisation(ctx context.Context, specialisationID int64) (int64, error)
	SetPatients(ctx context.Context, doctorID int64, patientIDs []int64) error
}
