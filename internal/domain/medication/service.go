package medication

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthcare/healthcare/internal/domain/identity"
	"github.com/healthcare/healthcare/internal/platform/patch"
	"github.com/healthcare/healthcare/internal/platform/search"
	"github.com/healthcare/healthcare/internal/platform/store"
)

// Directory resolves the patient a prescription is for and the doctor who
// wrote it.
type Directory interface {
	GetPatient(ctx context.Context, id int) (identity.Patient, error)
	GetDoctor(ctx context.Context, id int) (identity.Doctor, error)
}

type Service struct {
	prescriptions store.Repository[Prescription]
	dir           Directory
}

func NewService(prescriptions store.Repository[Prescription], dir Directory) *Service {
	return &Service{prescriptions: prescriptions, dir: dir}
}

func (s *Service) Create(ctx context.Context, p Prescription) (Prescription, error) {
	if err := validatePrescription(p); err != nil {
		return Prescription{}, err
	}
	p, err := s.resolve(ctx, p)
	if err != nil {
		return Prescription{}, err
	}
	id, err := s.prescriptions.Insert(p)
	if err != nil {
		return Prescription{}, err
	}
	zerolog.Ctx(ctx).Debug().Int("prescription_id", id).Int("patient_id", p.Patient.ID).Msg("prescription created")
	return p.WithID(id), nil
}

func (s *Service) Get(ctx context.Context, id int) (Prescription, error) {
	p, ok := s.prescriptions.Get(id)
	if !ok {
		return Prescription{}, fmt.Errorf("%w: prescription %d", store.ErrNotFound, id)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) []Prescription {
	return s.prescriptions.List()
}

func (s *Service) Replace(ctx context.Context, id int, p Prescription) (Prescription, error) {
	if err := store.CheckID(id, p.ID); err != nil {
		return Prescription{}, err
	}
	p = p.WithID(id)
	if err := validatePrescription(p); err != nil {
		return Prescription{}, err
	}
	if !s.prescriptions.Has(id) {
		return Prescription{}, fmt.Errorf("%w: prescription %d", store.ErrNotFound, id)
	}
	p, err := s.resolve(ctx, p)
	if err != nil {
		return Prescription{}, err
	}
	if err := s.prescriptions.Replace(id, p); err != nil {
		return Prescription{}, err
	}
	return p, nil
}

func (s *Service) Patch(ctx context.Context, id int, pp PrescriptionPatch) (Prescription, error) {
	if err := store.CheckPatchID(id, pp.ID); err != nil {
		return Prescription{}, err
	}
	var (
		patient *identity.Patient
		doctor  *identity.Doctor
	)
	if pp.Patient != nil {
		p, err := s.dir.GetPatient(ctx, pp.Patient.ID)
		if err != nil {
			return Prescription{}, err
		}
		patient = &p
	}
	if pp.Doctor != nil {
		d, err := s.dir.GetDoctor(ctx, pp.Doctor.ID)
		if err != nil {
			return Prescription{}, err
		}
		doctor = &d
	}

	return s.prescriptions.Update(id, func(cur Prescription) (Prescription, error) {
		if err := patch.Merge[Prescription](&cur, pp); err != nil {
			return cur, err
		}
		patch.Set(&cur.Patient, patient)
		patch.Set(&cur.Doctor, doctor)
		return cur, validatePrescription(cur)
	})
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if !s.prescriptions.Delete(id) {
		return fmt.Errorf("%w: prescription %d", store.ErrNotFound, id)
	}
	return nil
}

func (s *Service) Search(ctx context.Context, c PrescriptionCriteria) []Prescription {
	q := search.New[Prescription](*zerolog.Ctx(ctx)).
		EqualFold(c.PatientFirstName, func(p Prescription) string { return p.Patient.FirstName }).
		EqualFold(c.PatientLastName, func(p Prescription) string { return p.Patient.LastName }).
		EqualFold(c.DoctorFirstName, func(p Prescription) string { return p.Doctor.FirstName }).
		EqualFold(c.DoctorLastName, func(p Prescription) string { return p.Doctor.LastName }).
		EqualFold(c.Medication, func(p Prescription) string { return p.Medication }).
		DateRange(c.FromDate, c.ToDate, func(p Prescription) string { return p.PrescribedDate })
	if q.Empty() {
		return s.prescriptions.List()
	}
	return q.Run(s.prescriptions.List())
}

// ForPatient lists the prescriptions written for the patient.
func (s *Service) ForPatient(ctx context.Context, patientID int) []Prescription {
	return s.prescriptions.Find(func(p Prescription) bool { return p.Patient.ID == patientID })
}

// ForDoctor lists the prescriptions written by the doctor.
func (s *Service) ForDoctor(ctx context.Context, doctorID int) []Prescription {
	return s.prescriptions.Find(func(p Prescription) bool { return p.Doctor.ID == doctorID })
}

func (s *Service) resolve(ctx context.Context, p Prescription) (Prescription, error) {
	patient, err := s.dir.GetPatient(ctx, p.Patient.ID)
	if err != nil {
		return p, err
	}
	doctor, err := s.dir.GetDoctor(ctx, p.Doctor.ID)
	if err != nil {
		return p, err
	}
	p.Patient, p.Doctor = patient, doctor
	return p, nil
}

func validatePrescription(p Prescription) error {
	if p.Patient.ID <= 0 {
		return fmt.Errorf("patient is required")
	}
	if p.Doctor.ID <= 0 {
		return fmt.Errorf("doctor is required")
	}
	if strings.TrimSpace(p.Medication) == "" {
		return fmt.Errorf("medication is required")
	}
	if strings.TrimSpace(p.Dosage) == "" {
		return fmt.Errorf("dosage is required")
	}
	if _, err := time.Parse(search.DateLayout, p.PrescribedDate); err != nil {
		return fmt.Errorf("prescribed_date must be DD-MM-YYYY: %s", p.PrescribedDate)
	}
	return nil
}
