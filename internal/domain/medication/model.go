package medication

import (
	"github.com/healthcare/healthcare/internal/domain/identity"
	"github.com/healthcare/healthcare/internal/platform/patch"
)

// Prescription is a medication order written by a doctor for a patient.
// Patient and Doctor are copies taken at write time.
type Prescription struct {
	ID             int              `json:"id"`
	Patient        identity.Patient `json:"patient"`
	Doctor         identity.Doctor  `json:"doctor"`
	PrescribedDate string           `json:"prescribed_date"`
	Medication     string           `json:"medication"`
	Instruction    string           `json:"instruction"`
	Dosage         string           `json:"dosage"`
	Duration       string           `json:"duration"`
}

func (p Prescription) GetID() int { return p.ID }

func (p Prescription) WithID(id int) Prescription {
	p.ID = id
	return p
}

type PrescriptionPatch struct {
	ID             *int          `json:"id,omitempty"`
	Patient        *identity.Ref `json:"patient,omitempty"`
	Doctor         *identity.Ref `json:"doctor,omitempty"`
	PrescribedDate *string       `json:"prescribed_date,omitempty"`
	Medication     *string       `json:"medication,omitempty"`
	Instruction    *string       `json:"instruction,omitempty"`
	Dosage         *string       `json:"dosage,omitempty"`
	Duration       *string       `json:"duration,omitempty"`
}

func (pp PrescriptionPatch) ApplyTo(cur Prescription) Prescription {
	patch.Set(&cur.PrescribedDate, pp.PrescribedDate)
	patch.Set(&cur.Medication, pp.Medication)
	patch.Set(&cur.Instruction, pp.Instruction)
	patch.Set(&cur.Dosage, pp.Dosage)
	patch.Set(&cur.Duration, pp.Duration)
	return cur
}

type PrescriptionCriteria struct {
	PatientFirstName *string
	PatientLastName  *string
	DoctorFirstName  *string
	DoctorLastName   *string
	Medication       *string
	FromDate         *string
	ToDate           *string
}
