// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// NormalizeE164 formats a phone number to E.164 using the provided region as
// the default for national-format input. If parsing fails, it returns the
// trimmed input unchanged so the customer's raw entry is never lost.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	if region == "" {
		region = defaultRegion
	}

	number, err := phonenumbers.Parse(trimmed, strings.ToUpper(region))
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
