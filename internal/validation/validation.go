// Package validation provides field-level validation helpers shared by the
// ledger and the HTTP handlers.
package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

// OneOf checks that value is one of the allowed enum values.
func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}
