package patient

import (
	"context"

	"github.com/medrest/medrest/internal/domain/doctor"
	"github.com/medrest/medrest/internal/domain/prescription"
)

// Repository is the persistence boundary for patients and their
// associations. GetByID returns (nil, nil) when no row exists.
type Repository interface {
	Create(ctx context.Context, pt *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context) ([]*Patient, error)
	Update(ctx context.Context, pt *Patient) error
	Delete(ctx context.Context, id int64) error

	AddDoctor(ctx context.Context, patientID, doctorID int64) error
	RemoveDoctor(ctx context.Context, patientID, doctorID int64) error
	SetDoctors(ctx context.Context, patientID int64, doctorIDs []int64) error
	ListDoctors(ctx context.Context, patientID int64) ([]*doctor.Doctor, error)

	AddPrescription(ctx context.Context, patientID, prescriptionID int64) error
	RemovePrescription(ctx context.Context, patientID, prescriptionID int64) error
	SetPrescriptions(ctx context.Context, patientID int64, prescriptionIDs []int64) error
	ListPrescriptions(ctx context.Context, patientID int64) ([]*prescription.Prescription, error)
}
