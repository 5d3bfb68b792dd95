package kart

import (
	"fmt"

	"karting/internal/domain/validation"
)

// Status values as sent by the collaborator.
const (
	StatusAvailable   = "disponible"
	StatusUnavailable = "no disponible"
)

// PoolSize is the number of karts the venue owns.
const PoolSize = 15

// Field names used in validation errors and form inputs.
const (
	FieldCode   = "codigo"
	FieldStatus = "estado"
)

// Kart mirrors the collaborator's kart resource.
type Kart struct {
	ID     int64  `json:"id,omitempty"`
	Code   string `json:"codigo"`
	Status string `json:"estado"`
}

// Codes returns the fixed kart code pool K001..K015.
func Codes() []string {
	codes := make([]string, PoolSize)
	for i := range codes {
		codes[i] = fmt.Sprintf("K%03d", i+1)
	}
	return codes
}

// Statuses returns the accepted status values in display order.
func Statuses() []string {
	return []string{StatusAvailable, StatusUnavailable}
}

// ValidCode reports whether code belongs to the kart pool.
func ValidCode(code string) bool {
	for _, c := range Codes() {
		if c == code {
			return true
		}
	}
	return false
}

// StatusLabel returns the display label for a status value.
func StatusLabel(status string) string {
	switch status {
	case StatusAvailable:
		return "Disponible"
	case StatusUnavailable:
		return "No disponible"
	}
	return status
}

// Validate checks code and status.
// PRE: Kart struct is populated
// POST: Returns nil if valid, validation.Errors otherwise
func (k *Kart) Validate() error {
	errs := validation.Errors{}
	switch {
	case k.Code == "":
		errs.Add(FieldCode, "Debes seleccionar un go-kart.")
	case !ValidCode(k.Code):
		errs.Add(FieldCode, "Código de go-kart no válido.")
	}
	if k.Status != StatusAvailable && k.Status != StatusUnavailable {
		errs.Add(FieldStatus, "Estado no válido.")
	}
	return errs.Err()
}

// IsAvailable reports whether the kart can be assigned to a reservation.
func (k *Kart) IsAvailable() bool {
	return k.Status == StatusAvailable
}
