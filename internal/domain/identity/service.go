package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/healthcare/healthcare/internal/platform/patch"
	"github.com/healthcare/healthcare/internal/platform/search"
	"github.com/healthcare/healthcare/internal/platform/store"
)

// Service coordinates the Person store with the Patient and Doctor role
// stores. Roles share the Person id space: a Patient's id is its Person id.
type Service struct {
	persons  store.Repository[Person]
	patients store.Repository[Patient]
	doctors  store.Repository[Doctor]

	// mu serializes writes that touch more than one store.
	mu sync.Mutex
}

func NewService(persons store.Repository[Person], patients store.Repository[Patient], doctors store.Repository[Doctor]) *Service {
	return &Service{persons: persons, patients: patients, doctors: doctors}
}

// role describes one specialization of Person.
type role[T store.Entity[T]] struct {
	kind       string
	repo       store.Repository[T]
	person     func(T) Person
	withPerson func(T, Person) T
	validate   func(T) error
}

func (s *Service) patientRole() role[Patient] {
	return role[Patient]{
		kind:       "patient",
		repo:       s.patients,
		person:     func(p Patient) Person { return p.Person },
		withPerson: func(p Patient, base Person) Patient { p.Person = base; return p },
		validate:   validatePatient,
	}
}

func (s *Service) doctorRole() role[Doctor] {
	return role[Doctor]{
		kind:       "doctor",
		repo:       s.doctors,
		person:     func(d Doctor) Person { return d.Person },
		withPerson: func(d Doctor, base Person) Doctor { d.Person = base; return d },
		validate:   validateDoctor,
	}
}

// -- Person --

func (s *Service) CreatePerson(ctx context.Context, p Person) (Person, error) {
	if err := validatePerson(p); err != nil {
		return Person{}, err
	}
	id, err := s.persons.Insert(p)
	if err != nil {
		return Person{}, err
	}
	return p.WithID(id), nil
}

func (s *Service) GetPerson(ctx context.Context, id int) (Person, error) {
	p, ok := s.persons.Get(id)
	if !ok {
		return Person{}, fmt.Errorf("%w: person %d", store.ErrNotFound, id)
	}
	return p, nil
}

func (s *Service) ListPersons(ctx context.Context) []Person {
	return s.persons.List()
}

// ReplacePerson fully replaces a person and reconciles any Patient or Doctor
// role held under the same id.
func (s *Service) ReplacePerson(ctx context.Context, id int, p Person) (Person, error) {
	if err := store.CheckID(id, p.ID); err != nil {
		return Person{}, err
	}
	p = p.WithID(id)
	if err := validatePerson(p); err != nil {
		return Person{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persons.Replace(id, p); err != nil {
		return Person{}, err
	}
	if err := s.reconcile(ctx, p); err != nil {
		return Person{}, err
	}
	return p, nil
}

func (s *Service) PatchPerson(ctx context.Context, id int, pp PersonPatch) (Person, error) {
	if err := store.CheckPatchID(id, pp.id()); err != nil {
		return Person{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.persons.Update(id, func(cur Person) (Person, error) {
		if err := patch.Merge[Person](&cur, pp); err != nil {
			return cur, err
		}
		return cur, validatePerson(cur)
	})
	if err != nil {
		return Person{}, err
	}
	if err := s.reconcile(ctx, p); err != nil {
		return Person{}, err
	}
	return p, nil
}

// DeletePerson removes the identity from every identity store. Dependent
// records that embedded the person keep their copy.
func (s *Service) DeletePerson(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.persons.Delete(id)
	s.patients.Delete(id)
	s.doctors.Delete(id)
	if !removed {
		return fmt.Errorf("%w: person %d", store.ErrNotFound, id)
	}
	return nil
}

func (s *Service) SearchPersons(ctx context.Context, c PersonCriteria) []Person {
	q := personQuery(search.New[Person](*zerolog.Ctx(ctx)), c, func(p Person) Person { return p })
	if q.Empty() {
		return s.persons.List()
	}
	return q.Run(s.persons.List())
}

// reconcile copies the base fields of p into the role records sharing its id.
func (s *Service) reconcile(ctx context.Context, p Person) error {
	if err := reconcileRole(ctx, s.patientRole(), p); err != nil {
		return err
	}
	return reconcileRole(ctx, s.doctorRole(), p)
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, p Patient) (Patient, error) {
	return createRole(ctx, s, s.patientRole(), p)
}

func (s *Service) GetPatient(ctx context.Context, id int) (Patient, error) {
	return getRole(s.patientRole(), id)
}

func (s *Service) ListPatients(ctx context.Context) []Patient {
	return s.patients.List()
}

func (s *Service) ReplacePatient(ctx context.Context, id int, p Patient) (Patient, error) {
	return replaceRole(ctx, s, s.patientRole(), id, p)
}

func (s *Service) PatchPatient(ctx context.Context, id int, pp PatientPatch) (Patient, error) {
	return patchRole[Patient](ctx, s, s.patientRole(), id, pp.id(), pp)
}

func (s *Service) DeletePatient(ctx context.Context, id int) error {
	return deleteRole(s, s.patientRole(), id)
}

func (s *Service) SearchPatients(ctx context.Context, c PatientCriteria) []Patient {
	q := personQuery(search.New[Patient](*zerolog.Ctx(ctx)), c.PersonCriteria, func(p Patient) Person { return p.Person }).
		EqualFold(c.HealthStatus, func(p Patient) string { return p.HealthStatus })
	if q.Empty() {
		return s.patients.List()
	}
	return q.Run(s.patients.List())
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, d Doctor) (Doctor, error) {
	return createRole(ctx, s, s.doctorRole(), d)
}

func (s *Service) GetDoctor(ctx context.Context, id int) (Doctor, error) {
	return getRole(s.doctorRole(), id)
}

func (s *Service) ListDoctors(ctx context.Context) []Doctor {
	return s.doctors.List()
}

func (s *Service) ReplaceDoctor(ctx context.Context, id int, d Doctor) (Doctor, error) {
	return replaceRole(ctx, s, s.doctorRole(), id, d)
}

func (s *Service) PatchDoctor(ctx context.Context, id int, dp DoctorPatch) (Doctor, error) {
	return patchRole[Doctor](ctx, s, s.doctorRole(), id, dp.id(), dp)
}

func (s *Service) DeleteDoctor(ctx context.Context, id int) error {
	return deleteRole(s, s.doctorRole(), id)
}

func (s *Service) SearchDoctors(ctx context.Context, c DoctorCriteria) []Doctor {
	q := personQuery(search.New[Doctor](*zerolog.Ctx(ctx)), c.PersonCriteria, func(d Doctor) Person { return d.Person }).
		EqualFold(c.Specialization, func(d Doctor) string { return d.Specialization })
	if q.Empty() {
		return s.doctors.List()
	}
	return q.Run(s.doctors.List())
}

// -- role plumbing --

// createRole writes the Person first, then the role record under the same
// id. If the role write fails the Person write is undone.
func createRole[T store.Entity[T]](ctx context.Context, s *Service, r role[T], v T) (T, error) {
	var zero T
	if err := r.validate(v); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.persons.Insert(r.person(v))
	if err != nil {
		return zero, err
	}
	v = v.WithID(id)
	if err := r.repo.InsertAt(id, v); err != nil {
		s.persons.Delete(id)
		zerolog.Ctx(ctx).Error().Err(err).
			Str("kind", r.kind).
			Int("id", id).
			Msg("role write failed, person write undone")
		return zero, fmt.Errorf("%w: create %s %d: %v", store.ErrPartialWrite, r.kind, id, err)
	}
	return v, nil
}

func getRole[T store.Entity[T]](r role[T], id int) (T, error) {
	v, ok := r.repo.Get(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %d", store.ErrNotFound, r.kind, id)
	}
	return v, nil
}

func replaceRole[T store.Entity[T]](ctx context.Context, s *Service, r role[T], id int, v T) (T, error) {
	var zero T
	if err := store.CheckID(id, v.GetID()); err != nil {
		return zero, err
	}
	v = v.WithID(id)
	if err := r.validate(v); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := r.repo.Replace(id, v); err != nil {
		return zero, err
	}
	if err := s.persons.Replace(id, r.person(v)); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("kind", r.kind).Int("id", id).Msg("person write failed after role write")
		return zero, fmt.Errorf("%w: replace %s %d: %v", store.ErrPartialWrite, r.kind, id, err)
	}
	return v, nil
}

func patchRole[T store.Entity[T]](ctx context.Context, s *Service, r role[T], id int, bodyID *int, p patch.Patch[T]) (T, error) {
	var zero T
	if err := store.CheckPatchID(id, bodyID); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := r.repo.Update(id, func(cur T) (T, error) {
		if err := patch.Merge(&cur, p); err != nil {
			return cur, err
		}
		return cur, r.validate(cur)
	})
	if err != nil {
		return zero, err
	}
	if err := s.persons.Replace(id, r.person(v)); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("kind", r.kind).Int("id", id).Msg("person write failed after role patch")
		return zero, fmt.Errorf("%w: patch %s %d: %v", store.ErrPartialWrite, r.kind, id, err)
	}
	return v, nil
}

func deleteRole[T store.Entity[T]](s *Service, r role[T], id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !r.repo.Delete(id) {
		return fmt.Errorf("%w: %s %d", store.ErrNotFound, r.kind, id)
	}
	s.persons.Delete(id)
	return nil
}

func reconcileRole[T store.Entity[T]](ctx context.Context, r role[T], p Person) error {
	if !r.repo.Has(p.ID) {
		return nil
	}
	_, err := r.repo.Update(p.ID, func(cur T) (T, error) {
		return r.withPerson(cur, p), nil
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("kind", r.kind).Int("id", p.ID).Msg("role reconcile failed")
		return fmt.Errorf("%w: reconcile %s %d: %v", store.ErrPartialWrite, r.kind, p.ID, err)
	}
	return nil
}

func personQuery[T any](q *search.Query[T], c PersonCriteria, person func(T) Person) *search.Query[T] {
	return q.
		EqualFold(c.FirstName, func(v T) string { return person(v).FirstName }).
		EqualFold(c.LastName, func(v T) string { return person(v).LastName }).
		EqualFold(c.Gender, func(v T) string { return person(v).Gender }).
		EqualFold(c.Address, func(v T) string { return person(v).Address }).
		IntRange(c.MinAge, c.MaxAge, func(v T) int { return person(v).Age })
}
