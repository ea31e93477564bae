package sandbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthcare/healthcare/internal/domain/billing"
	"github.com/healthcare/healthcare/internal/domain/clinical"
	"github.com/healthcare/healthcare/internal/domain/identity"
	"github.com/healthcare/healthcare/internal/domain/medication"
	"github.com/healthcare/healthcare/internal/domain/scheduling"
	"github.com/healthcare/healthcare/internal/platform/search"
	"github.com/healthcare/healthcare/internal/platform/store"
)

func newServices() Services {
	people := identity.NewService(store.New[identity.Person](), store.New[identity.Patient](), store.New[identity.Doctor]())
	return Services{
		Identity:      people,
		Appointments:  scheduling.NewService(store.New[scheduling.Appointment](), people),
		Prescriptions: medication.NewService(store.New[medication.Prescription](), people),
		Bills:         billing.NewService(store.New[billing.Billing](), people),
		Records:       clinical.NewService(store.New[clinical.MedicalRecord](), people),
	}
}

func TestSeeder_Generate(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	result, err := NewSeeder(SeedConfig{PatientCount: 6, DoctorCount: 2, Seed: 42}, svc).Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Doctors)
	assert.Equal(t, 6, result.Patients)
	assert.Equal(t, 6, result.Appointments)
	assert.Equal(t, 6, result.Records)
	assert.Len(t, svc.Identity.ListPersons(ctx), 8)
	assert.Len(t, svc.Bills.List(ctx), 6)

	for _, p := range svc.Identity.ListPatients(ctx) {
		_, err := svc.Records.ForPatient(ctx, p.ID)
		assert.NoError(t, err, "patient %d should have a record", p.ID)
	}
}

func TestSeeder_Reproducible(t *testing.T) {
	ctx := context.Background()
	a, b := newServices(), newServices()
	_, err := NewSeeder(SeedConfig{PatientCount: 3, DoctorCount: 1, Seed: 7}, a).Generate(ctx)
	require.NoError(t, err)
	_, err = NewSeeder(SeedConfig{PatientCount: 3, DoctorCount: 1, Seed: 7}, b).Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, a.Identity.ListPersons(ctx), b.Identity.ListPersons(ctx))
	assert.Equal(t, a.Prescriptions.List(ctx), b.Prescriptions.List(ctx))
}

func TestSeeder_RequiresDoctor(t *testing.T) {
	_, err := NewSeeder(SeedConfig{PatientCount: 1}, newServices()).Generate(context.Background())
	assert.Error(t, err)
}

func TestDataGenerator_Formats(t *testing.T) {
	g := NewDataGenerator(1)
	for i := 0; i < 50; i++ {
		_, err := time.Parse(search.DateLayout, g.randomDate(2020, 2025))
		assert.NoError(t, err)
		_, err = time.Parse(search.TimeLayout, g.randomTime())
		assert.NoError(t, err)

		b := g.Bill(1)
		assert.GreaterOrEqual(t, b.Outstanding, 0.0)
	}
}
