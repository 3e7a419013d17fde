package service

// ValidationError is an error type for rejected input: missing required
// fields, malformed dates, out-of-range slot coordinates. It is raised
// before any mutation, so no partial state is ever written.
type ValidationError struct {
	message string
}

// Error returns the error message.
func (e ValidationError) Error() string {
	return e.message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) ValidationError {
	return ValidationError{message: message}
}
