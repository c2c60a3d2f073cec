package prescription

// Prescription maps to the prescriptions table.
type Prescription struct {
	ID             int64  `db:"id" json:"id"`
	MedicamentName string `db:"medicament_name" json:"medicamentName"`
	Price          *int   `db:"price" json:"price,omitempty"`
	AmountToTake   int    `db:"amount_to_take" json:"amountToTake"`
}

// Patch carries a partial update. Nil fields mean "no change".
type Patch struct {
	MedicamentName *string `json:"medicamentName"`
	Price          *int    `json:"price"`
	AmountToTake   *int    `json:"amountToTake"`
}

// ApplyPatch copies every non-nil field of p onto the prescription. A nil
// patch is a no-op.
func (pr *Prescription) ApplyPatch(p *Patch) {
	if p == nil {
		return
	}
	if p.MedicamentName != nil {
		pr.MedicamentName = *p.MedicamentName
	}
	if p.Price != nil {
		pr.Price = p.Price
	}
	if p.AmountToTake != nil {
		pr.AmountToTake = *p.AmountToTake
	}
}
