package prescription

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

const prCols = `id, medicament_name, price, amount_to_take`

func (r *repoPG) Create(ctx context.Context, pr *Prescription) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO prescriptions (medicament_name, price, amount_to_take)
		VALUES ($1, $2, $3)
		RETURNING id`,
		pr.MedicamentName, pr.Price, pr.AmountToTake,
	).Scan(&pr.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Prescription, error) {
	return scanPrescription(r.conn(ctx).QueryRow(ctx, `SELECT `+prCols+` FROM prescriptions WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context) ([]*Prescription, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+prCols+` FROM prescriptions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prs []*Prescription
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.MedicamentName, &p.Price, &p.AmountToTake); err != nil {
			return nil, err
		}
		prs = append(prs, &p)
	}
	return prs, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, pr *Prescription) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE prescriptions SET medicament_name=$2, price=$3, amount_to_take=$4 WHERE id = $1`,
		pr.ID, pr.MedicamentName, pr.Price, pr.AmountToTake,
	)
	return err
}

// Delete removes the prescription and every join row handed to patients.
// Runs under the caller's transaction.
func (r *repoPG) Delete(ctx context.Context, id int64) error {
	q := r.conn(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM patients_prescriptions WHERE prescription_id = $1`, id); err != nil {
		return err
	}
	_, err := q.Exec(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	return err
}

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.MedicamentName, &p.Price, &p.AmountToTake)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
