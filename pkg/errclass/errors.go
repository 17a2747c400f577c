package errclass

import "fmt"

// LeaseError is a stable, machine-readable error class.
type LeaseError struct {
	Code    string
	Message string
}

func (e *LeaseError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LeaseError) Is(target error) bool {
	t, ok := target.(*LeaseError)
	return ok && e.Code == t.Code
}

// WithMessage returns a new LeaseError with the same Code but a specific message.
func (e *LeaseError) WithMessage(msg string) *LeaseError {
	return &LeaseError{Code: e.Code, Message: msg}
}

// WithMessagef returns a new LeaseError with a formatted message.
func (e *LeaseError) WithMessagef(format string, args ...any) *LeaseError {
	return &LeaseError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// All stable error classes.
var (
	ErrInvalidArgument = &LeaseError{Code: "E_INVALID_ARGUMENT"}
	ErrLockConflict    = &LeaseError{Code: "E_LOCK_CONFLICT"}
	ErrLockExpired     = &LeaseError{Code: "E_LOCK_EXPIRED"}
	ErrLockNotHeld     = &LeaseError{Code: "E_LOCK_NOT_HELD"}
	ErrRecordCorrupt   = &LeaseError{Code: "E_RECORD_CORRUPT"}
	ErrPathInvalid     = &LeaseError{Code: "E_PATH_INVALID"}
	ErrInternal        = &LeaseError{Code: "E_INTERNAL"}
)
