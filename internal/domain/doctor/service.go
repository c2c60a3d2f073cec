package doctor

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medrest/medrest/internal/platform/db"
	"github.com/medrest/medrest/pkg/apperr"
)

const kind = "doctor"

type Service struct {
	repo Repository
	pool *pgxpool.Pool
}

func NewService(repo Repository, pool *pgxpool.Pool) *Service {
	return &Service{repo: repo, pool: pool}
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, apperr.NewEmptyCollection(kind)
	}
	return docs, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Doctor, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperr.NewNotFound(kind)
	}
	return doc, nil
}

// Exists reports absence as a NotFoundError so relationship endpoints in
// other packages can check an endpoint with one call.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.Get(ctx, id)
	return err
}

func (s *Service) Create(ctx context.Context, doc *Doctor) (*Doctor, error) {
	if doc == nil {
		return nil, apperr.NewInvalidInput("the given doctor doesn't contain any data")
	}
	doc.ID = 0
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Update replaces the stored doctor wholesale, preserving the id. Returns
// false, without error, when the id is unknown.
func (s *Service) Update(ctx context.Context, id int64, doc *Doctor) (bool, error) {
	found := false
	err := db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil || existing == nil {
			return err
		}
		found = true
		doc.ID = id
		return s.repo.Update(ctx, doc)
	})
	return found, err
}

// Patch merges the non-nil fields of p onto the stored doctor. A non-empty
// PatientIDs list replaces the doctor's patient set in the same
// transaction; an empty list leaves the set untouched.
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
		if p != nil && len(p.PatientIDs) > 0 {
			return s.repo.SetPatients(ctx, id, p.PatientIDs)
		}
		return nil
	})
	return found, err
}

// Delete removes the doctor together with its patient associations.
// Returns false, without error, when the id is unknown.
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

// AnyInDepartment reports whether any doctor is still assigned to the
// department. Used by the department delete guard.
func (s *Service) AnyInDepartment(ctx context.Context, departmentID int64) (bool, error) {
	n, err := s.repo.CountByDepartment(ctx, departmentID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AnyWithSpecialisation reports whether any doctor still carries the
// specialisation. Used by the specialisation delete guard.
func (s *Service) AnyWithSpecialisation(ctx context.Context, specialisationID int64) (bool, error) {
	n, err := s.repo.CountBySpecialisation(ctx, specialisationID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
