package clinical

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/healthcare/healthcare/internal/domain/identity"
	"github.com/healthcare/healthcare/internal/platform/patch"
	"github.com/healthcare/healthcare/internal/platform/search"
	"github.com/healthcare/healthcare/internal/platform/store"
)

var bloodGroupPattern = regexp.MustCompile(`^(A|B|AB|O)[+-]$`)

// PatientLookup resolves the patient a record belongs to.
type PatientLookup interface {
	GetPatient(ctx context.Context, id int) (identity.Patient, error)
}

// Service keeps at most one medical record per patient.
type Service struct {
	records  store.Repository[MedicalRecord]
	patients PatientLookup

	// mu makes the one-record-per-patient check and the write atomic.
	mu sync.Mutex
}

func NewService(records store.Repository[MedicalRecord], patients PatientLookup) *Service {
	return &Service{records: records, patients: patients}
}

// Create adds a record unless the patient already has one, in which case
// the existing record is returned with OutcomeAlreadyExists.
func (s *Service) Create(ctx context.Context, r MedicalRecord) (MedicalRecord, Outcome, error) {
	if err := validateRecord(r); err != nil {
		return MedicalRecord{}, 0, err
	}
	p, err := s.patients.GetPatient(ctx, r.Patient.ID)
	if err != nil {
		return MedicalRecord{}, 0, err
	}
	r.Patient = p

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.recordFor(p.ID); ok {
		zerolog.Ctx(ctx).Info().Int("patient_id", p.ID).Int("record_id", existing.ID).Msg("patient already has a medical record")
		return existing, OutcomeAlreadyExists, nil
	}
	id, err := s.records.Insert(r)
	if err != nil {
		return MedicalRecord{}, 0, err
	}
	return r.WithID(id), OutcomeCreated, nil
}

func (s *Service) Get(ctx context.Context, id int) (MedicalRecord, error) {
	r, ok := s.records.Get(id)
	if !ok {
		return MedicalRecord{}, fmt.Errorf("%w: medical record %d", store.ErrNotFound, id)
	}
	return r, nil
}

func (s *Service) List(ctx context.Context) []MedicalRecord {
	return s.records.List()
}

// Replace rewrites a record. Moving it to a patient who already has another
// record is refused with OutcomeAlreadyExists.
func (s *Service) Replace(ctx context.Context, id int, r MedicalRecord) (MedicalRecord, Outcome, error) {
	if err := store.CheckID(id, r.ID); err != nil {
		return MedicalRecord{}, 0, err
	}
	r = r.WithID(id)
	if err := validateRecord(r); err != nil {
		return MedicalRecord{}, 0, err
	}
	p, err := s.patients.GetPatient(ctx, r.Patient.ID)
	if err != nil {
		return MedicalRecord{}, 0, err
	}
	r.Patient = p

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.records.Has(id) {
		return MedicalRecord{}, 0, fmt.Errorf("%w: medical record %d", store.ErrNotFound, id)
	}
	if other, ok := s.recordFor(p.ID); ok && other.ID != id {
		return other, OutcomeAlreadyExists, nil
	}
	if err := s.records.Replace(id, r); err != nil {
		return MedicalRecord{}, 0, err
	}
	return r, OutcomeUpdated, nil
}

func (s *Service) Patch(ctx context.Context, id int, rp MedicalRecordPatch) (MedicalRecord, Outcome, error) {
	if err := store.CheckPatchID(id, rp.ID); err != nil {
		return MedicalRecord{}, 0, err
	}
	var patient *identity.Patient
	if rp.Patient != nil {
		p, err := s.patients.GetPatient(ctx, rp.Patient.ID)
		if err != nil {
			return MedicalRecord{}, 0, err
		}
		patient = &p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if patient != nil {
		if other, ok := s.recordFor(patient.ID); ok && other.ID != id && s.records.Has(id) {
			return other, OutcomeAlreadyExists, nil
		}
	}
	r, err := s.records.Update(id, func(cur MedicalRecord) (MedicalRecord, error) {
		if err := patch.Merge[MedicalRecord](&cur, rp); err != nil {
			return cur, err
		}
		patch.Set(&cur.Patient, patient)
		return cur, validateRecord(cur)
	})
	if err != nil {
		return MedicalRecord{}, 0, err
	}
	return r, OutcomeUpdated, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.records.Delete(id) {
		return fmt.Errorf("%w: medical record %d", store.ErrNotFound, id)
	}
	return nil
}

func (s *Service) Search(ctx context.Context, c MedicalRecordCriteria) []MedicalRecord {
	q := search.New[MedicalRecord](*zerolog.Ctx(ctx)).
		EqualFold(c.PatientFirstName, func(r MedicalRecord) string { return r.Patient.FirstName }).
		EqualFold(c.PatientLastName, func(r MedicalRecord) string { return r.Patient.LastName }).
		EqualFold(c.Diagnosis, func(r MedicalRecord) string { return r.Diagnosis }).
		EqualFold(c.BloodGroup, func(r MedicalRecord) string { return r.BloodGroup })
	if q.Empty() {
		return s.records.List()
	}
	return q.Run(s.records.List())
}

// ForPatient returns the patient's record.
func (s *Service) ForPatient(ctx context.Context, patientID int) (MedicalRecord, error) {
	r, ok := s.recordFor(patientID)
	if !ok {
		return MedicalRecord{}, fmt.Errorf("%w: medical record for patient %d", store.ErrNotFound, patientID)
	}
	return r, nil
}

func (s *Service) recordFor(patientID int) (MedicalRecord, bool) {
	found := s.records.Find(func(r MedicalRecord) bool { return r.Patient.ID == patientID })
	if len(found) == 0 {
		return MedicalRecord{}, false
	}
	return found[0], true
}

func validateRecord(r MedicalRecord) error {
	if r.Patient.ID <= 0 {
		return fmt.Errorf("patient is required")
	}
	if strings.TrimSpace(r.Diagnosis) == "" {
		return fmt.Errorf("diagnosis is required")
	}
	if strings.TrimSpace(r.Treatment) == "" {
		return fmt.Errorf("treatment is required")
	}
	if !bloodGroupPattern.MatchString(r.BloodGroup) {
		return fmt.Errorf("invalid blood_group: %s", r.BloodGroup)
	}
	return nil
}
