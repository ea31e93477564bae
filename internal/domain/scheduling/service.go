package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthcare/healthcare/internal/domain/identity"
	"github.com/healthcare/healthcare/internal/platform/patch"
	"github.com/healthcare/healthcare/internal/platform/search"
	"github.com/healthcare/healthcare/internal/platform/store"
)

// Directory resolves the patients and doctors an appointment refers to.
type Directory interface {
	GetPatient(ctx context.Context, id int) (identity.Patient, error)
	GetDoctor(ctx context.Context, id int) (identity.Doctor, error)
}

type Service struct {
	appointments store.Repository[Appointment]
	dir          Directory
}

func NewService(appointments store.Repository[Appointment], dir Directory) *Service {
	return &Service{appointments: appointments, dir: dir}
}

func (s *Service) Create(ctx context.Context, a Appointment) (Appointment, error) {
	if err := validateAppointment(a); err != nil {
		return Appointment{}, err
	}
	a, err := s.resolve(ctx, a)
	if err != nil {
		return Appointment{}, err
	}
	id, err := s.appointments.Insert(a)
	if err != nil {
		return Appointment{}, err
	}
	return a.WithID(id), nil
}

func (s *Service) Get(ctx context.Context, id int) (Appointment, error) {
	a, ok := s.appointments.Get(id)
	if !ok {
		return Appointment{}, fmt.Errorf("%w: appointment %d", store.ErrNotFound, id)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) []Appointment {
	return s.appointments.List()
}

func (s *Service) Replace(ctx context.Context, id int, a Appointment) (Appointment, error) {
	if err := store.CheckID(id, a.ID); err != nil {
		return Appointment{}, err
	}
	a = a.WithID(id)
	if err := validateAppointment(a); err != nil {
		return Appointment{}, err
	}
	if !s.appointments.Has(id) {
		return Appointment{}, fmt.Errorf("%w: appointment %d", store.ErrNotFound, id)
	}
	a, err := s.resolve(ctx, a)
	if err != nil {
		return Appointment{}, err
	}
	if err := s.appointments.Replace(id, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// Patch merges ap into the stored appointment. Patient and doctor refs in
// the patch are resolved to fresh copies.
func (s *Service) Patch(ctx context.Context, id int, ap AppointmentPatch) (Appointment, error) {
	if err := store.CheckPatchID(id, ap.ID); err != nil {
		return Appointment{}, err
	}
	var (
		patient *identity.Patient
		doctor  *identity.Doctor
	)
	if ap.Patient != nil {
		p, err := s.dir.GetPatient(ctx, ap.Patient.ID)
		if err != nil {
			return Appointment{}, err
		}
		patient = &p
	}
	if ap.Doctor != nil {
		d, err := s.dir.GetDoctor(ctx, ap.Doctor.ID)
		if err != nil {
			return Appointment{}, err
		}
		doctor = &d
	}

	return s.appointments.Update(id, func(cur Appointment) (Appointment, error) {
		if err := patch.Merge[Appointment](&cur, ap); err != nil {
			return cur, err
		}
		patch.Set(&cur.Patient, patient)
		patch.Set(&cur.Doctor, doctor)
		return cur, validateAppointment(cur)
	})
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if !s.appointments.Delete(id) {
		return fmt.Errorf("%w: appointment %d", store.ErrNotFound, id)
	}
	return nil
}

func (s *Service) Search(ctx context.Context, c AppointmentCriteria) []Appointment {
	q := search.New[Appointment](*zerolog.Ctx(ctx)).
		EqualFold(c.PatientFirstName, func(a Appointment) string { return a.Patient.FirstName }).
		EqualFold(c.PatientLastName, func(a Appointment) string { return a.Patient.LastName }).
		EqualFold(c.DoctorFirstName, func(a Appointment) string { return a.Doctor.FirstName }).
		EqualFold(c.DoctorLastName, func(a Appointment) string { return a.Doctor.LastName }).
		EqualFold(c.Specialization, func(a Appointment) string { return a.Doctor.Specialization }).
		DateRange(c.FromDate, c.ToDate, func(a Appointment) string { return a.Date })
	if q.Empty() {
		return s.appointments.List()
	}
	return q.Run(s.appointments.List())
}

// ForPatient lists the appointments whose embedded patient has the given id.
func (s *Service) ForPatient(ctx context.Context, patientID int) []Appointment {
	return s.appointments.Find(func(a Appointment) bool { return a.Patient.ID == patientID })
}

// ForDoctor lists the appointments whose embedded doctor has the given id.
func (s *Service) ForDoctor(ctx context.Context, doctorID int) []Appointment {
	return s.appointments.Find(func(a Appointment) bool { return a.Doctor.ID == doctorID })
}

func (s *Service) resolve(ctx context.Context, a Appointment) (Appointment, error) {
	p, err := s.dir.GetPatient(ctx, a.Patient.ID)
	if err != nil {
		return a, err
	}
	d, err := s.dir.GetDoctor(ctx, a.Doctor.ID)
	if err != nil {
		return a, err
	}
	a.Patient, a.Doctor = p, d
	return a, nil
}

func validateAppointment(a Appointment) error {
	if a.Patient.ID <= 0 {
		return fmt.Errorf("patient is required")
	}
	if a.Doctor.ID <= 0 {
		return fmt.Errorf("doctor is required")
	}
	if _, err := time.Parse(search.DateLayout, a.Date); err != nil {
		return fmt.Errorf("date must be DD-MM-YYYY: %s", a.Date)
	}
	if _, err := time.Parse(search.TimeLayout, a.Time); err != nil {
		return fmt.Errorf("time must be HH:MM:SS: %s", a.Time)
	}
	return nil
}
