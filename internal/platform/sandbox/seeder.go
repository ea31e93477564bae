// Package sandbox generates reproducible demo data for development
// environments. Everything is written through the domain services, so seeded
// records obey the same rules as API writes.
package sandbox

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthcare/healthcare/internal/domain/billing"
	"github.com/healthcare/healthcare/internal/domain/clinical"
	"github.com/healthcare/healthcare/internal/domain/identity"
	"github.com/healthcare/healthcare/internal/domain/medication"
	"github.com/healthcare/healthcare/internal/domain/scheduling"
	"github.com/healthcare/healthcare/internal/platform/search"
)

// SeedConfig controls the volume of generated data.
type SeedConfig struct {
	PatientCount int
	DoctorCount  int
	Seed         int64
}

func DefaultSeedConfig() SeedConfig {
	return SeedConfig{PatientCount: 10, DoctorCount: 3}
}

// Services is the set of services the seeder writes through.
type Services struct {
	Identity      *identity.Service
	Appointments  *scheduling.Service
	Prescriptions *medication.Service
	Bills         *billing.Service
	Records       *clinical.Service
}

type SeedResult struct {
	Doctors       int           `json:"doctors"`
	Patients      int           `json:"patients"`
	Appointments  int           `json:"appointments"`
	Prescriptions int           `json:"prescriptions"`
	Bills         int           `json:"bills"`
	Records       int           `json:"medical_records"`
	Duration      time.Duration `json:"duration"`
}

var (
	firstNamesMale   = []string{"James", "Robert", "John", "Michael", "David", "William", "Thomas", "Daniel"}
	firstNamesFemale = []string{"Mary", "Patricia", "Jennifer", "Linda", "Alice", "Susan", "Karen", "Nancy"}
	lastNames        = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis"}
	streets          = []string{"12 Oak St", "45 Maple Ave", "7 Cedar Rd", "301 Pine Ln", "88 Elm Dr"}
	specializations  = []string{"Cardiology", "Dermatology", "General Practice", "Neurology", "Pediatrics"}
	healthStatuses   = []string{"stable", "critical", "recovering", "under observation"}
	medications      = []string{"Amoxicillin", "Ibuprofen", "Metformin", "Lisinopril", "Atorvastatin"}
	diagnoses        = []string{"hypertension", "type 2 diabetes", "asthma", "migraine", "seasonal allergies"}
	treatments       = []string{"medication", "physiotherapy", "diet and exercise", "observation"}
	allergies        = []string{"", "penicillin", "peanuts", "latex", "pollen"}
	bloodGroups      = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	billableServices = []string{"consultation", "blood test", "x-ray", "ecg", "vaccination"}
)

// DataGenerator produces deterministic synthetic values.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator returns a generator seeded for reproducibility. If seed is
// 0 a time-based seed is chosen.
func NewDataGenerator(seed int64) *DataGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DataGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *DataGenerator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func (g *DataGenerator) randomDate(minYear, maxYear int) string {
	y := minYear + g.rng.Intn(maxYear-minYear+1)
	m := 1 + g.rng.Intn(12)
	d := 1 + g.rng.Intn(28) // safe for all months
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Format(search.DateLayout)
}

func (g *DataGenerator) randomTime() string {
	return time.Date(0, 1, 1, 8+g.rng.Intn(10), 15*g.rng.Intn(4), 0, 0, time.UTC).Format(search.TimeLayout)
}

func (g *DataGenerator) person() identity.Person {
	p := identity.Person{
		LastName:  g.pick(lastNames),
		ContactNo: 7000000000 + g.rng.Int63n(999999999),
		Address:   g.pick(streets),
		Age:       18 + g.rng.Intn(70),
	}
	if g.rng.Intn(2) == 0 {
		p.FirstName, p.Gender = g.pick(firstNamesMale), "male"
	} else {
		p.FirstName, p.Gender = g.pick(firstNamesFemale), "female"
	}
	return p
}

func (g *DataGenerator) Patient() identity.Patient {
	return identity.Patient{
		Person:         g.person(),
		HealthStatus:   g.pick(healthStatuses),
		MedicalHistory: g.pick(diagnoses),
	}
}

func (g *DataGenerator) Doctor() identity.Doctor {
	return identity.Doctor{Person: g.person(), Specialization: g.pick(specializations)}
}

func (g *DataGenerator) Appointment(patientID, doctorID int) scheduling.Appointment {
	return scheduling.Appointment{
		Date:    g.randomDate(2023, 2025),
		Time:    g.randomTime(),
		Patient: identity.Patient{Person: identity.Person{ID: patientID}},
		Doctor:  identity.Doctor{Person: identity.Person{ID: doctorID}},
	}
}

func (g *DataGenerator) Prescription(patientID, doctorID int) medication.Prescription {
	return medication.Prescription{
		Patient:        identity.Patient{Person: identity.Person{ID: patientID}},
		Doctor:         identity.Doctor{Person: identity.Person{ID: doctorID}},
		PrescribedDate: g.randomDate(2023, 2025),
		Medication:     g.pick(medications),
		Instruction:    "take after meals",
		Dosage:         fmt.Sprintf("%dmg", 100*(1+g.rng.Intn(5))),
		Duration:       fmt.Sprintf("%d days", 5+g.rng.Intn(10)),
	}
}

func (g *DataGenerator) Bill(patientID int) billing.Billing {
	invoiced := float64(50 + g.rng.Intn(450))
	paid := float64(g.rng.Intn(int(invoiced) + 1))
	return billing.Billing{
		BillDate:       g.randomDate(2023, 2025),
		BillTime:       g.randomTime(),
		Patient:        identity.Patient{Person: identity.Person{ID: patientID}},
		Services:       []string{g.pick(billableServices), g.pick(billableServices)},
		InvoicedAmount: invoiced,
		Payment:        paid,
		Outstanding:    invoiced - paid,
	}
}

func (g *DataGenerator) MedicalRecord(patientID int) clinical.MedicalRecord {
	return clinical.MedicalRecord{
		Patient:    identity.Patient{Person: identity.Person{ID: patientID}},
		Allergies:  g.pick(allergies),
		Diagnosis:  g.pick(diagnoses),
		Treatment:  g.pick(treatments),
		BloodGroup: g.pick(bloodGroups),
	}
}

// Seeder writes generated data through the domain services.
type Seeder struct {
	generator *DataGenerator
	config    SeedConfig
	svc       Services
}

func NewSeeder(config SeedConfig, svc Services) *Seeder {
	return &Seeder{generator: NewDataGenerator(config.Seed), config: config, svc: svc}
}

// Generate creates doctors, then patients, and gives every patient one
// appointment, prescription, bill and medical record.
func (s *Seeder) Generate(ctx context.Context) (*SeedResult, error) {
	start := time.Now()
	result := &SeedResult{}
	g := s.generator

	var doctorIDs []int
	for i := 0; i < s.config.DoctorCount; i++ {
		d, err := s.svc.Identity.CreateDoctor(ctx, g.Doctor())
		if err != nil {
			return result, fmt.Errorf("seed doctor: %w", err)
		}
		doctorIDs = append(doctorIDs, d.ID)
		result.Doctors++
	}
	if len(doctorIDs) == 0 && s.config.PatientCount > 0 {
		return result, fmt.Errorf("seed: at least one doctor is required")
	}

	for i := 0; i < s.config.PatientCount; i++ {
		p, err := s.svc.Identity.CreatePatient(ctx, g.Patient())
		if err != nil {
			return result, fmt.Errorf("seed patient: %w", err)
		}
		result.Patients++
		doctorID := doctorIDs[i%len(doctorIDs)]

		if _, err := s.svc.Appointments.Create(ctx, g.Appointment(p.ID, doctorID)); err != nil {
			return result, fmt.Errorf("seed appointment: %w", err)
		}
		result.Appointments++
		if _, err := s.svc.Prescriptions.Create(ctx, g.Prescription(p.ID, doctorID)); err != nil {
			return result, fmt.Errorf("seed prescription: %w", err)
		}
		result.Prescriptions++
		if _, err := s.svc.Bills.Create(ctx, g.Bill(p.ID)); err != nil {
			return result, fmt.Errorf("seed bill: %w", err)
		}
		result.Bills++
		if _, outcome, err := s.svc.Records.Create(ctx, g.MedicalRecord(p.ID)); err != nil {
			return result, fmt.Errorf("seed medical record: %w", err)
		} else if outcome == clinical.OutcomeCreated {
			result.Records++
		}
	}

	result.Duration = time.Since(start)
	zerolog.Ctx(ctx).Info().
		Int("doctors", result.Doctors).
		Int("patients", result.Patients).
		Dur("duration", result.Duration).
		Msg("demo data seeded")
	return result, nil
}
