package identity

import "github.com/healthcare/healthcare/internal/platform/patch"

// Person is the base identity shared by patients and doctors.
type Person struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ContactNo int64  `json:"contact_no"`
	Address   string `json:"address"`
	Gender    string `json:"gender"`
	Age       int    `json:"age"`
}

func (p Person) GetID() int { return p.ID }

func (p Person) WithID(id int) Person {
	p.ID = id
	return p
}

// Patient is a Person with clinical status. Its id is the Person id.
type Patient struct {
	Person
	HealthStatus   string `json:"health_status"`
	MedicalHistory string `json:"medical_history"`
}

func (p Patient) WithID(id int) Patient {
	p.ID = id
	return p
}

// Doctor is a Person with a specialization. Its id is the Person id.
type Doctor struct {
	Person
	Specialization string `json:"specialization"`
}

func (d Doctor) WithID(id int) Doctor {
	d.ID = id
	return d
}

// PersonPatch is a sparse update for Person. A nil field is left unchanged.
// ID, when set, must match the id being patched.
type PersonPatch struct {
	ID        *int    `json:"id,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	ContactNo *int64  `json:"contact_no,omitempty"`
	Address   *string `json:"address,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	Age       *int    `json:"age,omitempty"`
}

func (pp PersonPatch) ApplyTo(cur Person) Person {
	patch.Set(&cur.FirstName, pp.FirstName)
	patch.Set(&cur.LastName, pp.LastName)
	patch.Set(&cur.ContactNo, pp.ContactNo)
	patch.Set(&cur.Address, pp.Address)
	patch.Set(&cur.Gender, pp.Gender)
	patch.Set(&cur.Age, pp.Age)
	return cur
}

func (pp PersonPatch) id() *int { return pp.ID }

type PatientPatch struct {
	PersonPatch
	HealthStatus   *string `json:"health_status,omitempty"`
	MedicalHistory *string `json:"medical_history,omitempty"`
}

func (pp PatientPatch) ApplyTo(cur Patient) Patient {
	cur.Person = pp.PersonPatch.ApplyTo(cur.Person)
	patch.Set(&cur.HealthStatus, pp.HealthStatus)
	patch.Set(&cur.MedicalHistory, pp.MedicalHistory)
	return cur
}

type DoctorPatch struct {
	PersonPatch
	Specialization *string `json:"specialization,omitempty"`
}

func (dp DoctorPatch) ApplyTo(cur Doctor) Doctor {
	cur.Person = dp.PersonPatch.ApplyTo(cur.Person)
	patch.Set(&cur.Specialization, dp.Specialization)
	return cur
}

// PersonCriteria filters people. Every field is optional; string fields
// match case-insensitively and age bounds are inclusive.
type PersonCriteria struct {
	FirstName *string
	LastName  *string
	Gender    *string
	Address   *string
	MinAge    *int
	MaxAge    *int
}

type PatientCriteria struct {
	PersonCriteria
	HealthStatus *string
}

type DoctorCriteria struct {
	PersonCriteria
	Specialization *string
}

// Ref points a dependent record at a Patient or Doctor by id. Dependent
// records resolve it to an embedded copy when they are written.
type Ref struct {
	ID int `json:"id"`
}
