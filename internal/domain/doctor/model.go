package doctor

// Doctor maps to the doctors table. Both references are nullable id
// columns; no database constraint backs them.
type Doctor struct {
	ID               int64  `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	Salary           *int   `db:"salary" json:"salary,omitempty"`
	SpecialisationID *int64 `db:"specialisation_id" json:"specialisationId,omitempty"`
	DepartmentID     *int64 `db:"department_id" json:"departmentId,omitempty"`
}

// Patch carries a partial update. Nil fields mean "no change". PatientIDs
// replaces the doctor's patient set only when non-empty; an empty or absent
// list leaves the set untouched.
type Patch struct {
	Name             *string `json:"name"`
	Salary           *int    `json:"salary"`
	SpecialisationID *int64  `json:"specialisationId"`
	DepartmentID     *int64  `json:"departmentId"`
	PatientIDs       []int64 `json:"patientIds"`
}

// ApplyPatch copies every non-nil scalar or reference field of p onto the
// doctor. The patient set lives in a join table and is replaced by the
// service, not here.
func (d *Doctor) ApplyPatch(p *Patch) {
	if p == nil {
		return
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Salary != nil {
		d.Salary = p.Salary
	}
	if p.SpecialisationID != nil {
		d.SpecialisationID = p.SpecialisationID
	}
	if p.DepartmentID != nil {
		d.DepartmentID = p.DepartmentID
	}
}
