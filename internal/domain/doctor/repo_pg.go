package doctor

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

const docCols = `id, name, salary, specialisation_id, department_id`

func (r *repoPG) Create(ctx context.Context, doc *Doctor) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctors (name, salary, specialisation_id, department_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		doc.Name, doc.Salary, doc.SpecialisationID, doc.DepartmentID,
	).Scan(&doc.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	return scanDoc(r.conn(ctx).QueryRow(ctx, `SELECT `+docCols+` FROM doctors WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+docCols+` FROM doctors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Salary, &d.SpecialisationID, &d.DepartmentID); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, doc *Doctor) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctors SET name=$2, salary=$3, specialisation_id=$4, department_id=$5 WHERE id = $1`,
		doc.ID, doc.Name, doc.Salary, doc.SpecialisationID, doc.DepartmentID,
	)
	return err
}

// Delete removes the doctor and every join row tying patients to it. Runs
// under the caller's transaction.
func (r *repoPG) Delete(ctx context.Context, id int64) error {
	q := r.conn(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM patients_doctors WHERE doctor_id = $1`, id); err != nil {
		return err
	}
	_, err := q.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	return err
}

// CountByDepartment counts doctors assigned to the department. NULL
// department_id rows never match the equality.
func (r *repoPG) CountByDepartment(ctx context.Context, departmentID int64) (int64, error) {
	var n int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM doctors WHERE department_id = $1`, departmentID,
	).Scan(&n)
	return n, err
}

func (r *repoPG) CountBySpecialisation(ctx context.Context, specialisationID int64) (int64, error) {
	var n int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM doctors WHERE specialisation_id = $1`, specialisationID,
	).Scan(&n)
	return n, err
}

// SetPatients replaces the doctor's patient set with the given ids. Must
// run inside a transaction; the delete and inserts are not atomic otherwise.
func (r *repoPG) SetPatients(ctx context.Context, doctorID int64, patientIDs []int64) error {
	q := r.conn(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM patients_doctors WHERE doctor_id = $1`, doctorID); err != nil {
		return err
	}
	for _, pid := range patientIDs {
		if _, err := q.Exec(ctx, `
			INSERT INTO patients_doctors (patient_id, doctor_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			pid, doctorID,
		); err != nil {
			return err
		}
	}
	return nil
}

func scanDoc(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Salary, &d.SpecialisationID, &d.DepartmentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
