package clinical

import (
	"github.com/healthcare/healthcare/internal/domain/identity"
	"github.com/healthcare/healthcare/internal/platform/patch"
)

// MedicalRecord holds the clinical summary of one patient. A patient has at
// most one record.
type MedicalRecord struct {
	ID         int              `json:"id"`
	Patient    identity.Patient `json:"patient"`
	Allergies  string           `json:"allergies,omitempty"`
	Diagnosis  string           `json:"diagnosis"`
	Treatment  string           `json:"treatment"`
	BloodGroup string           `json:"blood_group"`
}

func (r MedicalRecord) GetID() int { return r.ID }

func (r MedicalRecord) WithID(id int) MedicalRecord {
	r.ID = id
	return r
}

type MedicalRecordPatch struct {
	ID         *int          `json:"id,omitempty"`
	Patient    *identity.Ref `json:"patient,omitempty"`
	Allergies  *string       `json:"allergies,omitempty"`
	Diagnosis  *string       `json:"diagnosis,omitempty"`
	Treatment  *string       `json:"treatment,omitempty"`
	BloodGroup *string       `json:"blood_group,omitempty"`
}

func (rp MedicalRecordPatch) ApplyTo(cur MedicalRecord) MedicalRecord {
	patch.Set(&cur.Allergies, rp.Allergies)
	patch.Set(&cur.Diagnosis, rp.Diagnosis)
	patch.Set(&cur.Treatment, rp.Treatment)
	patch.Set(&cur.BloodGroup, rp.BloodGroup)
	return cur
}

type MedicalRecordCriteria struct {
	PatientFirstName *string
	PatientLastName  *string
	Diagnosis        *string
	BloodGroup       *string
}

// Outcome is the result of a medical record write that did not fail.
type Outcome int

const (
	OutcomeCreated Outcome = iota + 1
	OutcomeUpdated
	// OutcomeAlreadyExists means the target patient already has a record
	// and nothing was written.
	OutcomeAlreadyExists
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}
