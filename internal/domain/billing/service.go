package billing

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

// PatientLookup resolves the patient a bill is issued to.
type PatientLookup interface {
	GetPatient(ctx context.Context, id int) (identity.Patient, error)
}

type Service struct {
	bills    store.Repository[Billing]
	patients PatientLookup
}

func NewService(bills store.Repository[Billing], patients PatientLookup) *Service {
	return &Service{bills: bills, patients: patients}
}

func (s *Service) Create(ctx context.Context, b Billing) (Billing, error) {
	if err := validateBilling(b); err != nil {
		return Billing{}, err
	}
	p, err := s.patients.GetPatient(ctx, b.Patient.ID)
	if err != nil {
		return Billing{}, err
	}
	b.Patient = p
	id, err := s.bills.Insert(b)
	if err != nil {
		return Billing{}, err
	}
	return b.WithID(id), nil
}

func (s *Service) Get(ctx context.Context, id int) (Billing, error) {
	b, ok := s.bills.Get(id)
	if !ok {
		return Billing{}, fmt.Errorf("%w: bill %d", store.ErrNotFound, id)
	}
	return b, nil
}

func (s *Service) List(ctx context.Context) []Billing {
	return s.bills.List()
}

func (s *Service) Replace(ctx context.Context, id int, b Billing) (Billing, error) {
	if err := store.CheckID(id, b.ID); err != nil {
		return Billing{}, err
	}
	b = b.WithID(id)
	if err := validateBilling(b); err != nil {
		return Billing{}, err
	}
	if !s.bills.Has(id) {
		return Billing{}, fmt.Errorf("%w: bill %d", store.ErrNotFound, id)
	}
	p, err := s.patients.GetPatient(ctx, b.Patient.ID)
	if err != nil {
		return Billing{}, err
	}
	b.Patient = p
	if err := s.bills.Replace(id, b); err != nil {
		return Billing{}, err
	}
	return b, nil
}

func (s *Service) Patch(ctx context.Context, id int, bp BillingPatch) (Billing, error) {
	if err := store.CheckPatchID(id, bp.ID); err != nil {
		return Billing{}, err
	}
	var patient *identity.Patient
	if bp.Patient != nil {
		p, err := s.patients.GetPatient(ctx, bp.Patient.ID)
		if err != nil {
			return Billing{}, err
		}
		patient = &p
	}

	return s.bills.Update(id, func(cur Billing) (Billing, error) {
		if err := patch.Merge[Billing](&cur, bp); err != nil {
			return cur, err
		}
		patch.Set(&cur.Patient, patient)
		return cur, validateBilling(cur)
	})
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if !s.bills.Delete(id) {
		return fmt.Errorf("%w: bill %d", store.ErrNotFound, id)
	}
	return nil
}

func (s *Service) Search(ctx context.Context, c BillingCriteria) []Billing {
	q := search.New[Billing](*zerolog.Ctx(ctx)).
		EqualFold(c.PatientFirstName, func(b Billing) string { return b.Patient.FirstName }).
		EqualFold(c.PatientLastName, func(b Billing) string { return b.Patient.LastName }).
		DateRange(c.FromDate, c.ToDate, func(b Billing) string { return b.BillDate }).
		FloatRange(c.MinAmount, c.MaxAmount, func(b Billing) float64 { return b.InvoicedAmount })
	if q.Empty() {
		return s.bills.List()
	}
	return q.Run(s.bills.List())
}

// ForPatient lists the bills issued to the patient.
func (s *Service) ForPatient(ctx context.Context, patientID int) []Billing {
	return s.bills.Find(func(b Billing) bool { return b.Patient.ID == patientID })
}

func validateBilling(b Billing) error {
	if b.Patient.ID <= 0 {
		return fmt.Errorf("patient is required")
	}
	if _, err := time.Parse(search.DateLayout, b.BillDate); err != nil {
		return fmt.Errorf("bill_date must be DD-MM-YYYY: %s", b.BillDate)
	}
	if _, err := time.Parse(search.TimeLayout, b.BillTime); err != nil {
		return fmt.Errorf("bill_time must be HH:MM:SS: %s", b.BillTime)
	}
	for i, svc := range b.Services {
		if strings.TrimSpace(svc) == "" {
			return fmt.Errorf("services[%d] is empty", i)
		}
	}
	if b.InvoicedAmount < 0 || b.Payment < 0 || b.Outstanding < 0 {
		return fmt.Errorf("amounts must not be negative")
	}
	return nil
}
