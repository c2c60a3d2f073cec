package location

// Location maps to the locations table.
type Location struct {
	ID     int64  `db:"id" json:"id"`
	City   string `db:"city" json:"city"`
	Street string `db:"street" json:"street"`
	Number *int   `db:"number" json:"number,omitempty"`
}

// Patch carries a partial update. Nil fields mean "no change".
type Patch struct {
	City   *string `json:"city"`
	Street *string `json:"street"`
	Number *int    `json:"number"`
}

// ApplyPatch copies every non-nil field of p onto the location. A nil patch
// is a no-op.
func (l *Location) ApplyPatch(p *Patch) {
	if p == nil {
		return
	}
	if p.City != nil {
		l.City = *p.City
	}
	if p.Street != nil {
		l.Street = *p.Street
	}
	if p.Number != nil {
		l.Number = p.Number
	}
}
