package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks an invariant violation in source data. It is
// recoverable by design: the caller decides whether to skip the offending
// input or re-import it, the process never dies on one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
