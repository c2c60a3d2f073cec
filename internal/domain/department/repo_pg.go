package department

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medrest/medrest/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const depCols = `id, name, location_id`

func (r *repoPG) Create(ctx context.Context, dep *Department) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO departments (name, location_id)
		VALUES ($1, $2)
		RETURNING id`,
		dep.Name, dep.LocationID,
	).Scan(&dep.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Department, error) {
	return scanDep(r.conn(ctx).QueryRow(ctx, `SELECT `+depCols+` FROM departments WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context) ([]*Department, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+depCols+` FROM departments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []*Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.LocationID); err != nil {
			return nil, err
		}
		deps = append(deps, &d)
	}
	return deps, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, dep *Department) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE departments SET name=$2, location_id=$3 WHERE id = $1`,
		dep.ID, dep.Name, dep.LocationID,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	return err
}

// CountByLocation counts departments referencing the location. NULL
// location_id rows never match the equality.
func (r *repoPG) CountByLocation(ctx context.Context, locationID int64) (int64, error) {
	var n int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM departments WHERE location_id = $1`, locationID,
	).Scan(&n)
	return n, err
}

func scanDep(row pgx.Row) (*Department, error) {
	var d Department
	err := row.Scan(&d.ID, &d.Name, &d.LocationID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
