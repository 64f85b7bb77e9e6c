package models

import (
	"errors"
	"strings"
)

var (
	// ErrValidation marks missing or invalid required fields.
	ErrValidation = errors.New("validation failed")
	// ErrPermissionDenied marks a failed role check.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrStoreUnavailable marks a failed call to the remote store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound marks a reference to a missing document.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated marks a missing or invalid identity token.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RequireFields returns a ValidationError naming each empty value in fields,
// checked in the order of keys.
func RequireFields(fields map[string]string, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if strings.TrimSpace(fields[k]) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
