// Package errs contains the error kinds used across the generation pipeline
// for stable error mapping between layers.
package errs

import (
	"errors"
	"fmt"
)

// Pipeline sentinels. The lifecycle service wraps these with context and is
// the only component allowed to translate them into a persisted error status.
var (
	// ErrRender indicates template content is missing or unrenderable.
	ErrRender = errors.New("render failed")

	// ErrExport indicates HTML rasterization / PDF generation failed.
	ErrExport = errors.New("export failed")

	// ErrStorage indicates the artifact upload failed after a successful export.
	ErrStorage = errors.New("storage failed")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports caller-supplied values that violate an invariant.
// It is rejected before generation starts; no document record is created.
type ValidationError struct {
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Violations)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Violations: map[string]string{field: reason}}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
