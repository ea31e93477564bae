package identity

import (
	"fmt"
	"regexp"
	"strings"
)

var validGenders = map[string]bool{
	"male": true, "female": true, "other": true,
}

var specializationPattern = regexp.MustCompile(`^[A-Za-z ]+$`)

func validatePerson(p Person) error {
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if p.Gender != "" && !validGenders[strings.ToLower(p.Gender)] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	if p.Age < 0 || p.Age > 150 {
		return fmt.Errorf("invalid age: %d", p.Age)
	}
	if p.ContactNo < 0 {
		return fmt.Errorf("invalid contact_no: %d", p.ContactNo)
	}
	return nil
}

func validatePatient(p Patient) error {
	return validatePerson(p.Person)
}

func validateDoctor(d Doctor) error {
	if err := validatePerson(d.Person); err != nil {
		return err
	}
	if !specializationPattern.MatchString(d.Specialization) {
		return fmt.Errorf("specialization must contain letters only")
	}
	return nil
}
