package department

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medrest/medrest/internal/platform/db"
	"github.com/medrest/medrest/pkg/apperr"
)

const kind = "department"

type Service struct {
	repo Repository
	pool *pgxpool.Pool
}

func NewService(repo Repository, pool *pgxpool.Pool) *Service {
	return &Service{repo: repo, pool: pool}
}

func (s *Service) List(ctx context.Context) ([]*Department, error) {
	deps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(deps) == 0 {
		return nil, apperr.NewEmptyCollection(kind)
	}
	return deps, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Department, error) {
	dep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return nil, apperr.NewNotFound(kind)
	}
	return dep, nil
}

// Exists reports absence as a NotFoundError so relationship endpoints in
// other packages can check an endpoint with one call.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.Get(ctx, id)
	return err
}

func (s *Service) Create(ctx context.Context, dep *Department) (*Department, error) {
	if dep == nil {
		return nil, apperr.NewInvalidInput("the given department doesn't contain any data")
	}
	dep.ID = 0
	if err := s.repo.Create(ctx, dep); err != nil {
		return nil, err
	}
	return dep, nil
}

// Update replaces the stored department wholesale, preserving the id.
// Returns false, without error, when the id is unknown.
func (s *Service) Update(ctx context.Context, id int64, dep *Department) (bool, error) {
	found := false
	err := db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil || existing == nil {
			return err
		}
		found = true
		dep.ID = id
		return s.repo.Update(ctx, dep)
	})
	return found, err
}

// Patch merges the non-nil fields of p onto the stored department. Returns
// false, without error, when the id is unknown.
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

// Delete removes the department. Returns false, without error, when the id
// is unknown. The referential guard runs at the handler, before this call.
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

// AnyAtLocation reports whether any department still references the
// location. Used by the location delete guard.
func (s *Service) AnyAtLocation(ctx context.Context, locationID int64) (bool, error) {
	n, err := s.repo.CountByLocation(ctx, locationID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
