package location

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

const locCols = `id, city, street, number`

func (r *repoPG) Create(ctx context.Context, loc *Location) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO locations (city, street, number)
		VALUES ($1, $2, $3)
		RETURNING id`,
		loc.City, loc.Street, loc.Number,
	).Scan(&loc.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Location, error) {
	return scanLoc(r.conn(ctx).QueryRow(ctx, `SELECT `+locCols+` FROM locations WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context) ([]*Location, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+locCols+` FROM locations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locs []*Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.City, &l.Street, &l.Number); err != nil {
			return nil, err
		}
		locs = append(locs, &l)
	}
	return locs, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, loc *Location) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE locations SET city=$2, street=$3, number=$4 WHERE id = $1`,
		loc.ID, loc.City, loc.Street, loc.Number,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	return err
}

func scanLoc(row pgx.Row) (*Location, error) {
	var l Location
	err := row.Scan(&l.ID, &l.City, &l.Street, &l.Number)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
