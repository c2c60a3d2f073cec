package prescription

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medrest/medrest/internal/platform/db"
	"github.com/medrest/medrest/pkg/apperr"
)

const kind = "prescription"

type Service struct {
	repo Repository
	pool *pgxpool.Pool
}

func NewService(repo Repository, pool *pgxpool.Pool) *Service {
	return &Service{repo: repo, pool: pool}
}

func (s *Service) List(ctx context.Context) ([]*Prescription, error) {
	prs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(prs) == 0 {
		return nil, apperr.NewEmptyCollection(kind)
	}
	return prs, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Prescription, error) {
	pr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, apperr.NewNotFound(kind)
	}
	return pr, nil
}

// Exists reports absence as a NotFoundError so relationship endpoints in
// other packages can check an endpoint with one call.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.Get(ctx, id)
	return err
}

func (s *Service) Create(ctx context.Context, pr *Prescription) (*Prescription, error) {
	if pr == nil {
		return nil, apperr.NewInvalidInput("the given prescription doesn't contain any data")
	}
	pr.ID = 0
	if err := s.repo.Create(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

// Update replaces the stored prescription wholesale, preserving the id.
// Returns false, without error, when the id is unknown.
func (s *Service) Update(ctx context.Context, id int64, pr *Prescription) (bool, error) {
	found := false
	err := db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil || existing == nil {
			return err
		}
		found = true
		pr.ID = id
		return s.repo.Update(ctx, pr)
	})
	return found, err
}

// Patch merges the non-nil fields of p onto the stored prescription.
// Returns false, without error, when the id is unknown.
func (s *Service) Patch(ctx context.Context, id int64, p *Patch) (bool, error) {
	found := false
	err := db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil || existing == nil {
			return err
		}
		found = true
		existing.ApplyPatch(p)
		return s.repo.Update(ctx, existing)
	})
	return found, err
}

// Delete removes the prescription together with its patient associations.
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
