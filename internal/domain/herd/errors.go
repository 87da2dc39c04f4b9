package herd

import (
	"errors"
	"fmt"
)

// Sentinel kinds for herd errors. Callers match with errors.Is.
var (
	ErrValidation = errors.New("invalid herd input")
	ErrCapacity   = errors.New("capacity exceeded")
)

// ValidationError reports a malformed horse or zone in the caller input.
// HorseID is empty when the problem is with a zone declaration.
type ValidationError struct {
	HorseID    string
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	if e.HorseID == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Constraint)
	}
	return fmt.Sprintf("horse %q: %s: %s", e.HorseID, e.Field, e.Constraint)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// CapacityError reports a horse count or survivor count that does not fit a
// zone's declared slots.
type CapacityError struct {
	Zone      string
	Capacity  int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("zone %q: requested %d exceeds capacity %d", e.Zone, e.Requested, e.Capacity)
}

func (e *CapacityError) Unwrap() error { return ErrCapacity }
