package repository

// NotFoundError is an error type for when a resource is not found. Callers
// treat it as a soft condition (404 / empty result), never a crash.
type NotFoundError struct {
	message string
}

// Error returns the error message.
func (e NotFoundError) Error() string {
	return e.message
}

// NewNotFoundError creates a NotFoundError with the given message.
func NewNotFoundError(message string) NotFoundError {
	return NotFoundError{message: message}
}

// IntegrityError is an error type for data-integrity violations: mismatched
// flattened columns, storage constraint failures, connectivity loss. It is
// fatal for the current operation and surfaced as-is, with no retry.
type IntegrityError struct {
	message string
	cause   error
}

// Error returns the error message.
func (e IntegrityError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Unwrap returns the underlying cause, if any.
func (e IntegrityError) Unwrap() error {
	return e.cause
}

// NewIntegrityError creates an IntegrityError wrapping an optional cause.
func NewIntegrityError(message string, cause error) IntegrityError {
	return IntegrityError{message: message, cause: cause}
}
