package booking

import "fmt"

// Error codes for the booking flow.
const (
	CodeValidation  = "validationError"
	CodeConflict    = "conflictError"
	CodePersistence = "persistenceError"
	CodeUpstream    = "upstreamError"
)

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError flags malformed or missing input. It is returned
// before any state is touched and is not logged as exceptional.
func NewValidationError(msg string) error {
	return &BookingError{Code: CodeValidation, Message: msg}
}

// NewPersistenceError flags an unreachable or unwritable durable store;
// the reservation attempt is aborted with state unchanged.
func NewPersistenceError(msg string) error {
	return &BookingError{Code: CodePersistence, Message: msg}
}
