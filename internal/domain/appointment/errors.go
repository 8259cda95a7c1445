package appointment

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInvalidConfiguration is returned when working hours cannot produce any slot.
	ErrInvalidConfiguration = errors.New("appointment: invalid working hours configuration")
	// ErrSlotTaken is returned when the requested window is no longer free.
	ErrSlotTaken = errors.New("appointment: slot taken")
	// ErrInvalidTransition is returned when a lifecycle action does not apply to the current state.
	ErrInvalidTransition = errors.New("appointment: invalid transition")
)

// ValidationError captures field level problems found before any store interaction.
type ValidationError struct {
	FieldErrors map[string]string
}

func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for f := range v.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v.FieldErrors[f])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

func (v *ValidationError) Add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	if _, exists := v.FieldErrors[field]; !exists {
		v.FieldErrors[field] = message
	}
}

// Err returns v as an error when it holds at least one field error, nil otherwise.
func (v *ValidationError) Err() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
