package customer

import (
	"regexp"
	"strings"
	"time"

	"karting/internal/domain/validation"
)

// Max length and range constants for user-editable fields.
const (
	MaxNameLength = 100
	MaxVisits     = 999
)

// Field names used in validation errors and form inputs.
const (
	FieldName      = "nombre"
	FieldEmail     = "email"
	FieldBirthDate = "fechaNacimiento"
	FieldVisits    = "numeroVisitas"
)

// FrequentVisits is the visit count above which a customer counts as frequent.
const FrequentVisits = 5

// emailPattern accepts Gmail addresses only. Receipts are delivered through
// the venue's Gmail integration, so no other domain is valid.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)

// Customer mirrors the collaborator's cliente resource.
type Customer struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"nombre"`
	Email     string `json:"email"`
	BirthDate string `json:"fechaNacimiento,omitempty"` // yyyy-MM-dd
	Visits    int    `json:"numeroVisitas"`
}

// ValidEmail reports whether email is an accepted Gmail address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validate checks the fields the console is responsible for.
// PRE: Customer struct is populated from a form or JSON body
// POST: Returns nil if valid, validation.Errors otherwise
// INVARIANT: Name non-empty after trimming, Email matches the Gmail pattern
func (c *Customer) Validate() error {
	errs := validation.Errors{}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs.Add(FieldName, "El nombre es obligatorio.")
	} else if len(name) > MaxNameLength {
		errs.Add(FieldName, "El nombre no puede superar 100 caracteres.")
	}
	if !ValidEmail(c.Email) {
		errs.Add(FieldEmail, "El correo debe ser una dirección válida de Gmail.")
	}
	if c.Visits < 0 || c.Visits > MaxVisits {
		errs.Add(FieldVisits, "El número de visitas debe estar entre 0 y 999.")
	}
	if c.BirthDate != "" {
		if _, err := time.Parse(time.DateOnly, c.BirthDate); err != nil {
			errs.Add(FieldBirthDate, "La fecha de nacimiento no es válida.")
		}
	}
	return errs.Err()
}

// Normalize trims surrounding whitespace from text fields.
func (c *Customer) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.BirthDate = strings.TrimSpace(c.BirthDate)
}

// IsFrequent reports whether the customer has more than FrequentVisits visits.
func (c *Customer) IsFrequent() bool {
	return c.Visits > FrequentVisits
}
