package patient

// Patient maps to the patients table. Doctor and prescription associations
// live in join tables and are reached through the repository.
type Patient struct {
	ID           int64  `db:"id" json:"id"`
	FirstName    string `db:"first_name" json:"firstName"`
	LastName     string `db:"last_name" json:"lastName"`
	PhoneNumber  string `db:"phone_number" json:"phoneNumber"`
	EmailAddress string `db:"email_address" json:"emailAddress"`
}

// Patch carries a partial update. Nil fields mean "no change". DoctorIDs
// and PrescriptionIDs replace the corresponding association set only when
// non-empty; an empty or absent list leaves the set untouched.
type Patch struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	PhoneNumber     *string `json:"phoneNumber"`
	EmailAddress    *string `json:"emailAddress"`
	DoctorIDs       []int64 `json:"doctorIds"`
	PrescriptionIDs []int64 `json:"prescriptionIds"`
}

// ApplyPatch copies every non-nil scalar field of p onto the patient. The
// association sets are replaced by the service, not here.
func (pt *Patient) ApplyPatch(p *Patch) {
	if p == nil {
		return
	}
	if p.FirstName != nil {
		pt.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		pt.LastName = *p.LastName
	}
	if p.PhoneNumber != nil {
		pt.PhoneNumber = *p.PhoneNumber
	}
	if p.EmailAddress != nil {
		pt.EmailAddress = *p.EmailAddress
	}
}
