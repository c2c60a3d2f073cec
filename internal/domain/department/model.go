package department

// Department maps to the departments table. LocationID is a nullable
// reference; no database constraint backs it.
type Department struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	LocationID *int64 `db:"location_id" json:"locationId,omitempty"`
}

// Patch carries a partial update. Nil fields mean "no change".
type Patch struct {
	Name       *string `json:"name"`
	LocationID *int64  `json:"locationId"`
}

// ApplyPatch copies every non-nil field of p onto the department. A nil
// patch is a no-op. Setting LocationID replaces the reference wholesale.
func (d *Department) ApplyPatch(p *Patch) {
	if p == nil {
		return
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.LocationID != nil {
		d.LocationID = p.LocationID
	}
}
