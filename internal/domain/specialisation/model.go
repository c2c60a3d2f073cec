package specialisation

// Specialisation maps to the specialisations table.
type Specialisation struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	MinSalary *int   `db:"min_salary" json:"minSalary,omitempty"`
	MaxSalary *int   `db:"max_salary" json:"maxSalary,omitempty"`
}

// Patch carries a partial update. Nil fields mean "no change".
type Patch struct {
	Name      *string `json:"name"`
	MinSalary *int    `json:"minSalary"`
	MaxSalary *int    `json:"maxSalary"`
}

// ApplyPatch copies every non-nil field of p onto the specialisation. A nil
// patch is a no-op.
func (s *Specialisation) ApplyPatch(p *Patch) {
	if p == nil {
		return
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.MinSalary != nil {
		s.MinSalary = p.MinSalary
	}
	if p.MaxSalary != nil {
		s.MaxSalary = p.MaxSalary
	}
}
