package location

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medrest/medrest/internal/platform/db"
	"github.com/medrest/medrest/pkg/apperr"
)

const kind = "location"

type Service struct {
	repo Repository
	pool *pgxpool.Pool
}

func NewService(repo Repository, pool *pgxpool.Pool) *Service {
	return &Service{repo: repo, pool: pool}
}

// List returns every stored location. An empty table is reported as not
// found, matching the listing contract shared by all collections.
func (s *Service) List(ctx context.Context) ([]*Location, error) {
	locs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return nil, apperr.NewEmptyCollection(kind)
	}
	return locs, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Location, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, apperr.NewNotFound(kind)
	}
	return loc, nil
}

// Exists reports absence as a NotFoundError so relationship endpoints in
// other packages can check an endpoint with one call.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.Get(ctx, id)
	return err
}

func (s *Service) Create(ctx context.Context, loc *Location) (*Location, error) {
	if loc == nil {
		return nil, apperr.NewInvalidInput("the given location doesn't contain any data")
	}
	loc.ID = 0
	if err := s.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Update replaces the stored location wholesale, preserving the id. Returns
// false, without error, when the id is unknown.
func (s *Service) Update(ctx context.Context, id int64, loc *Location) (bool, error) {
	found := false
	err := db.RunInTx(ctx, s.pool, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil || existing == nil {
			return err
		}
		found = true
		loc.ID = id
		return s.repo.Update(ctx, loc)
	})
	return found, err
}

// Patch merges the non-nil fields of p onto the stored location. Returns
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

// Delete removes the location. Returns false, without error, when the id is
// unknown. The referential guard runs at the handler, before this call.
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
