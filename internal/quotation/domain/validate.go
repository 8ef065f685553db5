package domain

import (
	"regexp"
	"strings"
)

// Form error keys used by the wizard.
const (
	ErrKeyName     = "name"
	ErrKeyEmail    = "email"
	ErrKeyPhone    = "phone"
	ErrKeyCountry  = "country"
	ErrKeyDocument = "document"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidatePersonalInfo checks the personal info step. All failures are
// collected so the customer sees every problem at once, not just the first.
// Returns an empty map when the data is valid.
func ValidatePersonalInfo(data CustomerFormData) map[string]string {
	errors := map[string]string{}

	if strings.TrimSpace(data.Name) == "" {
		errors[ErrKeyName] = "Name is required"
	}

	if strings.TrimSpace(data.Email) == "" {
		errors[ErrKeyEmail] = "Email is required"
	} else if !emailRegex.MatchString(data.Email) {
		errors[ErrKeyEmail] = "Please enter a valid email address"
	}

	if strings.TrimSpace(data.Phone) == "" {
		errors[ErrKeyPhone] = "Phone number is required"
	}

	if data.Country == "" {
		errors[ErrKeyCountry] = "Please select your country"
	}

	if data.HasDocument && data.DocumentKey == "" {
		errors[ErrKeyDocument] = "Please upload your document or turn off the document upload option"
	}

	return errors
}
