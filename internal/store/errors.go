package store

import "errors"

// Sentinel errors returned by store methods. Callers match with errors.Is
// and translate into their own failure kinds at the component boundary.
var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert or update violates a
	// uniqueness constraint (e.g. a user email already registered).
	ErrDuplicate = errors.New("record already exists")

	// ErrForeignKey is returned when a write references a missing parent
	// row or would orphan dependents the schema protects.
	ErrForeignKey = errors.New("related record constraint violated")
)
