package scheduling

import (
	"github.com/healthcare/healthcare/internal/domain/identity"
	"github.com/healthcare/healthcare/internal/platform/patch"
)

// Appointment books a patient with a doctor. Patient and Doctor are copies
// taken when the appointment was written and are not kept in sync.
type Appointment struct {
	ID      int              `json:"id"`
	Date    string           `json:"date"`
	Time    string           `json:"time"`
	Patient identity.Patient `json:"patient"`
	Doctor  identity.Doctor  `json:"doctor"`
}

func (a Appointment) GetID() int { return a.ID }

func (a Appointment) WithID(id int) Appointment {
	a.ID = id
	return a
}

// AppointmentPatch is a sparse update for Appointment. Patient and Doctor
// are resolved by the service before the patch is applied.
type AppointmentPatch struct {
	ID      *int          `json:"id,omitempty"`
	Date    *string       `json:"date,omitempty"`
	Time    *string       `json:"time,omitempty"`
	Patient *identity.Ref `json:"patient,omitempty"`
	Doctor  *identity.Ref `json:"doctor,omitempty"`
}

func (ap AppointmentPatch) ApplyTo(cur Appointment) Appointment {
	patch.Set(&cur.Date, ap.Date)
	patch.Set(&cur.Time, ap.Time)
	return cur
}

// AppointmentCriteria filters appointments. Names match case-insensitively
// and the date bounds are inclusive DD-MM-YYYY.
type AppointmentCriteria struct {
	PatientFirstName *string
	PatientLastName  *string
	DoctorFirstName  *string
	DoctorLastName   *string
	Specialization   *string
	FromDate         *string
	ToDate           *string
}
