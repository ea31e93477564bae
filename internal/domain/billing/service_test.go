package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/healthcare/healthcare/internal/domain/identity"
	"github.com/healthcare/healthcare/internal/platform/store"
)

type fixture struct {
	svc     *Service
	people  *identity.Service
	patient identity.Patient
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	people := identity.NewService(store.New[identity.Person](), store.New[identity.Patient](), store.New[identity.Doctor]())
	p, err := people.CreatePatient(context.Background(), identity.Patient{Person: identity.Person{FirstName: "Dana", LastName: "Reed", Age: 33}})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return fixture{svc: NewService(store.New[Billing](), people), people: people, patient: p}
}

func (f fixture) bill(date string, amount float64) Billing {
	return Billing{
		BillDate:       date,
		BillTime:       "12:00:00",
		Patient:        identity.Patient{Person: identity.Person{ID: f.patient.ID}},
		Services:       []string{"consultation", "x-ray"},
		InvoicedAmount: amount,
		Payment:        amount / 2,
		Outstanding:    amount / 2,
	}
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestCreateBill(t *testing.T) {
	f := newFixture(t)
	b, err := f.svc.Create(context.Background(), f.bill("01-06-2024", 120))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != 1 || b.Patient.FirstName != "Dana" {
		t.Errorf("unexpected bill: %+v", b)
	}
}

func TestCreateBill_NoSumInvariant(t *testing.T) {
	f := newFixture(t)
	b := f.bill("01-06-2024", 100)
	b.Payment, b.Outstanding = 10, 10
	if _, err := f.svc.Create(context.Background(), b); err != nil {
		t.Errorf("amounts that do not add up should be accepted: %v", err)
	}
}

func TestCreateBill_NegativeAmount(t *testing.T) {
	f := newFixture(t)
	b := f.bill("01-06-2024", 100)
	b.Outstanding = -1
	if _, err := f.svc.Create(context.Background(), b); err == nil {
		t.Error("expected error for negative outstanding")
	}
}

func TestGetBill_ServicesAreCopied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, _ := f.svc.Create(ctx, f.bill("01-06-2024", 120))

	got, _ := f.svc.Get(ctx, b.ID)
	got.Services[0] = "tampered"

	again, _ := f.svc.Get(ctx, b.ID)
	if again.Services[0] != "consultation" {
		t.Errorf("stored services mutated through a copy: %v", again.Services)
	}
}

func TestPatchBill(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, _ := f.svc.Create(ctx, f.bill("01-06-2024", 120))

	got, err := f.svc.Patch(ctx, b.ID, BillingPatch{Outstanding: floatPtr(0), Services: []string{"consultation"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Outstanding != 0 || got.Payment != 60 || len(got.Services) != 1 {
		t.Errorf("unexpected patch result: %+v", got)
	}
}

func TestPatchBill_UnknownPatient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, _ := f.svc.Create(ctx, f.bill("01-06-2024", 120))

	if _, err := f.svc.Patch(ctx, b.ID, BillingPatch{Patient: &identity.Ref{ID: 50}}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchBills(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.Create(ctx, f.bill("01-06-2024", 50))
	f.svc.Create(ctx, f.bill("02-06-2024", 150))
	f.svc.Create(ctx, f.bill("03-07-2024", 300))

	got := f.svc.Search(ctx, BillingCriteria{MinAmount: floatPtr(100), ToDate: strPtr("30-06-2024")})
	if len(got) != 1 || got[0].InvoicedAmount != 150 {
		t.Errorf("unexpected result: %+v", got)
	}
	got = f.svc.Search(ctx, BillingCriteria{PatientLastName: strPtr("reed"), MaxAmount: floatPtr(300)})
	if len(got) != 3 {
		t.Errorf("expected 3, got %d", len(got))
	}
}

func TestForPatient_AfterPatientRemoved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.Create(ctx, f.bill("01-06-2024", 50))
	if err := f.people.DeletePerson(ctx, f.patient.ID); err != nil {
		t.Fatalf("delete person: %v", err)
	}
	if got := f.svc.ForPatient(ctx, f.patient.ID); len(got) != 1 {
		t.Errorf("bills should survive patient removal, got %d", len(got))
	}
}
