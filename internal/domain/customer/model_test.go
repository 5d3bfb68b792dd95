package customer_test

import (
	"errors"
	"testing"

	"karting/internal/domain/customer"
	"karting/internal/domain/validation"
)

// TestValidEmail checks the Gmail-only validator.
func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user.name@gmail.com", true},
		{"a_b+tag@gmail.com", true},
		{"user@yahoo.com", false},
		{"not-an-email", false},
		{"user@gmail.com.ar", false},
		{"@gmail.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := customer.ValidEmail(tt.email); got != tt.want {
				t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

// TestCustomerValidation covers each field rule.
func TestCustomerValidation(t *testing.T) {
	tests := []struct {
		name      string
		customer  customer.Customer
		wantField string
	}{
		{"valid", customer.Customer{Name: "Juan Pérez", Email: "juan@gmail.com", BirthDate: "1990-05-01"}, ""},
		{"valid without birth date", customer.Customer{Name: "Ana", Email: "ana@gmail.com", Visits: 3}, ""},
		{"blank name", customer.Customer{Name: "   ", Email: "juan@gmail.com"}, customer.FieldName},
		{"wrong domain", customer.Customer{Name: "Juan", Email: "juan@yahoo.com"}, customer.FieldEmail},
		{"negative visits", customer.Customer{Name: "Juan", Email: "juan@gmail.com", Visits: -1}, customer.FieldVisits},
		{"bad birth date", customer.Customer{Name: "Juan", Email: "juan@gmail.com", BirthDate: "01/05/1990"}, customer.FieldBirthDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.customer.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verrs validation.Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() = %v, want validation.Errors", err)
			}
			if !verrs.Has(tt.wantField) {
				t.Errorf("errors %v missing field %q", verrs, tt.wantField)
			}
		})
	}
}

// TestCustomerIsFrequent checks the frequent-visitor threshold.
func TestCustomerIsFrequent(t *testing.T) {
	if (&customer.Customer{Visits: 5}).IsFrequent() {
		t.Error("5 visits should not be frequent")
	}
	if !(&customer.Customer{Visits: 6}).IsFrequent() {
		t.Error("6 visits should be frequent")
	}
}
