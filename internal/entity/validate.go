// Package entity defines the Client, Booking and Settings records the sidebar
// works on, with validation, field routing and patch-style updates. Validators
// collect every issue instead of failing fast, so a form can surface all of
// them at once.
package entity

import (
	"regexp"
	"slices"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationResult reports every issue found in a record. Ok is true only when
// Errors is empty.
type ValidationResult struct {
	Ok     bool     `json:"ok"`
	Errors []string `json:"errors"`
}

func newValidationResult(errs []string) ValidationResult {
	return ValidationResult{
		Ok:     len(errs) == 0,
		Errors: errs,
	}
}

// ValidEmail reports whether the address matches the accepted shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type dirtySet map[string]struct{}

func (d dirtySet) mark(field string) {
	d[field] = struct{}{}
}

func (d dirtySet) fields() []string {
	fields := make([]string, 0, len(d))
	for field := range d {
		fields = append(fields, field)
	}

	slices.Sort(fields)

	return fields
}
