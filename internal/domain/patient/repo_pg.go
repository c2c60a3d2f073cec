package patient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medrest/medrest/internal/domain/doctor"
	"github.com/medrest/medrest/internal/domain/prescription"
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

const ptCols = `id, first_name, last_name, phone_number, email_address`

func (r *repoPG) Create(ctx context.Context, pt *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (first_name, last_name, phone_number, email_address)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		pt.FirstName, pt.LastName, pt.PhoneNumber, pt.EmailAddress,
	).Scan(&pt.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+ptCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+ptCols+` FROM patients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pts []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.EmailAddress); err != nil {
			return nil, err
		}
		pts = append(pts, &p)
	}
	return pts, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, pt *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET first_name=$2, last_name=$3, phone_number=$4, email_address=$5 WHERE id = $1`,
		pt.ID, pt.FirstName, pt.LastName, pt.PhoneNumber, pt.EmailAddress,
	)
	return err
}

// Delete removes the patient and every association row it owns. Runs under
// the caller's transaction.
func (r *repoPG) Delete(ctx context.Context, id int64) error {
	q := r.conn(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM patients_doctors WHERE patient_id = $1`, id); err != nil {
		return err
	}
	if _, err := q.Exec(ctx, `DELETE FROM patients_prescriptions WHERE patient_id = $1`, id); err != nil {
		return err
	}
	_, err := q.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

func (r *repoPG) AddDoctor(ctx context.Context, patientID, doctorID int64) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients_doctors (patient_id, doctor_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		patientID, doctorID,
	)
	return err
}

func (r *repoPG) RemoveDoctor(ctx context.Context, patientID, doctorID int64) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM patients_doctors WHERE patient_id = $1 AND doctor_id = $2`,
		patientID, doctorID,
	)
	return err
}

// SetDoctors replaces the patient's doctor set with the given ids. Must run
// inside a transaction.
func (r *repoPG) SetDoctors(ctx context.Context, patientID int64, doctorIDs []int64) error {
	q := r.conn(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM patients_doctors WHERE patient_id = $1`, patientID); err != nil {
		return err
	}
	for _, did := range doctorIDs {
		if _, err := q.Exec(ctx, `
			INSERT INTO patients_doctors (patient_id, doctor_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			patientID, did,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) ListDoctors(ctx context.Context, patientID int64) ([]*doctor.Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT d.id, d.name, d.salary, d.specialisation_id, d.department_id
		FROM doctors d
		JOIN patients_doctors pd ON pd.doctor_id = d.id
		WHERE pd.patient_id = $1
		ORDER BY d.id`,
		patientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*doctor.Doctor
	for rows.Next() {
		var d doctor.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Salary, &d.SpecialisationID, &d.DepartmentID); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

func (r *repoPG) AddPrescription(ctx context.Context, patientID, prescriptionID int64) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients_prescriptions (patient_id, prescription_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		patientID, prescriptionID,
	)
	return err
}

func (r *repoPG) RemovePrescription(ctx context.Context, patientID, prescriptionID int64) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM patients_prescriptions WHERE patient_id = $1 AND prescription_id = $2`,
		patientID, prescriptionID,
	)
	return err
}

// SetPrescriptions replaces the patient's prescription set with the given
// ids. Must run inside a transaction.
func (r *repoPG) SetPrescriptions(ctx context.Context, patientID int64, prescriptionIDs []int64) error {
	q := r.conn(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM patients_prescriptions WHERE patient_id = $1`, patientID); err != nil {
		return err
	}
	for _, prid := range prescriptionIDs {
		if _, err := q.Exec(ctx, `
			INSERT INTO patients_prescriptions (patient_id, prescription_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			patientID, prid,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) ListPrescriptions(ctx context.Context, patientID int64) ([]*prescription.Prescription, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.id, p.medicament_name, p.price, p.amount_to_take
		FROM prescriptions p
		JOIN patients_prescriptions pp ON pp.prescription_id = p.id
		WHERE pp.patient_id = $1
		ORDER BY p.id`,
		patientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prs []*prescription.Prescription
	for rows.Next() {
		var p prescription.Prescription
		if err := rows.Scan(&p.ID, &p.MedicamentName, &p.Price, &p.AmountToTake); err != nil {
			return nil, err
		}
		prs = append(prs, &p)
	}
	return prs, rows.Err()
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.EmailAddress)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
