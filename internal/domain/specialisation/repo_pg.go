package specialisation

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

const specCols = `id, name, min_salary, max_salary`

func (r *repoPG) Create(ctx context.Context, spec *Specialisation) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO specialisations (name, min_salary, max_salary)
		VALUES ($1, $2, $3)
		RETURNING id`,
		spec.Name, spec.MinSalary, spec.MaxSalary,
	).Scan(&spec.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Specialisation, error) {
	return scanSpec(r.conn(ctx).QueryRow(ctx, `SELECT `+specCols+` FROM specialisations WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context) ([]*Specialisation, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+specCols+` FROM specialisations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specs []*Specialisation
	for rows.Next() {
		var s Specialisation
		if err := rows.Scan(&s.ID, &s.Name, &s.MinSalary, &s.MaxSalary); err != nil {
			return nil, err
		}
		specs = append(specs, &s)
	}
	return specs, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, spec *Specialisation) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE specialisations SET name=$2, min_salary=$3, max_salary=$4 WHERE id = $1`,
		spec.ID, spec.Name, spec.MinSalary, spec.MaxSalary,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM specialisations WHERE id = $1`, id)
	return err
}

func scanSpec(row pgx.Row) (*Specialisation, error) {
	var s Specialisation
	err := row.Scan(&s.ID, &s.Name, &s.MinSalary, &s.MaxSalary)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
