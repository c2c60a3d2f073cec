package patient

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medrest/medrest/internal/domain/doctor"
	"github.com/medrest/medrest/internal/domain/prescription"
	"github.com/medrest/medrest/internal/platform/db"
	"github.com/medrest/medrest/pkg/apperr"
)

const kind = "patient"

// DoctorChecker verifies a doctor id before an appointment is made or
// removed. Implemented by the doctor service.
type DoctorChecker interface {
	Exists(ctx context.Context, id int64) error
}

// PrescriptionChecker verifies a prescription id before it is handed to a
// patient. Implemented by the prescription service.
type PrescriptionChecker interface {
	Exists(ctx context.Context, id int64) error
}

type Service struct {
	repo          Repository
	pool          *pgxpool.Pool
	doctors       DoctorChecker
	prescriptions PrescriptionChecker
}

func NewService(repo Repository, pool *pgxpool.Pool, doctors DoctorChecker, prescriptions PrescriptionChecker) *Service {
	return &Service{repo: repo, pool: pool, doctors: doctors, prescriptions: prescriptions}
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	pts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, apperr.NewEmptyCollection(kind)
	}
	return pts, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	pt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pt == nil {
		return nil, apperr.NewNotFound(kind)
	}
	return pt, nil
}

func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.Get(ctx, id)
	return err
}

func (s *Service) Create(ctx context.Context, pt *Patient) (*Patient, error) {
	if pt == nil {
		return nil, apperr.NewInvalidInput("the given patient doesn't contain any data")
	}
	pt.ID = 0
	if err := s.repo.Create(ctx, pt); err != nil {
		return nil, err
	}
	return pt, nil
}

// Update replaces the stored patient wholesale, preserving the id. Returns
// false, without error, when the id is unknown.
func (s *Service) Update(ctx context.Context, id int64, pt *Patient) (bool, error) {
	found := false
	err := db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil || existing == nil {
			return err
		}
		found = true
		pt.ID = id
		return s.repo.Update(ctx, pt)
	})
	return found, err
}

// Patch merges the non-nil fields of p onto the stored patient. Non-empty
// DoctorIDs or PrescriptionIDs replace the matching association set in the
// same transaction; empty lists leave the sets untouched.
func (s *Service) Patch(ctx context.Context, id int64, p *Patch) (bool, error) {
	found := false
	err := db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil || existing == nil {
			return err
		}
		found = true
		existing.ApplyPatch(p)
		if err := s.repo.Update(ctx, existing); err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		if len(p.DoctorIDs) > 0 {
			if err := s.repo.SetDoctors(ctx, id, p.DoctorIDs); err != nil {
				return err
			}
		}
		if len(p.PrescriptionIDs) > 0 {
			if err := s.repo.SetPrescriptions(ctx, id, p.PrescriptionIDs); err != nil {
				return err
			}
		}
		return nil
	})
	return found, err
}

// Delete removes the patient together with its doctor and prescription
// associations. Returns false, without error, when the id is unknown.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	found := false
	err := db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil || existing == nil {
			return err
		}
		found = true
		return s.repo.Delete(ctx, id)
	})
	return found, err
}

// AddDoctor makes an appointment between the patient and the doctor. Both
// ids must resolve; each absence raises its own NotFoundError. Adding the
// same appointment twice is a no-op.
func (s *Service) AddDoctor(ctx context.Context, patientID, doctorID int64) error {
	return db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		if err := s.Exists(ctx, patientID); err != nil {
			return err
		}
		if err := s.doctors.Exists(ctx, doctorID); err != nil {
			return err
		}
		return s.repo.AddDoctor(ctx, patientID, doctorID)
	})
}

// RemoveDoctor removes the appointment. Both endpoint checks and the join
// row delete share one transaction.
func (s *Service) RemoveDoctor(ctx context.Context, patientID, doctorID int64) error {
	return db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		if err := s.Exists(ctx, patientID); err != nil {
			return err
		}
		if err := s.doctors.Exists(ctx, doctorID); err != nil {
			return err
		}
		return s.repo.RemoveDoctor(ctx, patientID, doctorID)
	})
}

func (s *Service) AddPrescription(ctx context.Context, patientID, prescriptionID int64) error {
	return db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		if err := s.Exists(ctx, patientID); err != nil {
			return err
		}
		if err := s.prescriptions.Exists(ctx, prescriptionID); err != nil {
			return err
		}
		return s.repo.AddPrescription(ctx, patientID, prescriptionID)
	})
}

func (s *Service) RemovePrescription(ctx context.Context, patientID, prescriptionID int64) error {
	return db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		if err := s.Exists(ctx, patientID); err != nil {
			return err
		}
		if err := s.prescriptions.Exists(ctx, prescriptionID); err != nil {
			return err
		}
		return s.repo.RemovePrescription(ctx, patientID, prescriptionID)
	})
}

// Doctors returns the patient's appointed doctors. The list may be empty;
// only an unknown patient id is an error.
func (s *Service) Doctors(ctx context.Context, patientID int64) ([]*doctor.Doctor, error) {
	if err := s.Exists(ctx, patientID); err != nil {
		return nil, err
	}
	docs, err := s.repo.ListDoctors(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []*doctor.Doctor{}
	}
	return docs, nil
}

// Prescriptions returns the patient's prescriptions. The list may be
// empty; only an unknown patient id is an error.
func (s *Service) Prescriptions(ctx context.Context, patientID int64) ([]*prescription.Prescription, error) {
	if err := s.Exists(ctx, patientID); err != nil {
		return nil, err
	}
	prs, err := s.repo.ListPrescriptions(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if prs == nil {
		prs = []*prescription.Prescription{}
	}
	return prs, nil
}
