package pipeline

import "errors"

// Sentinel error kinds for pipeline operations. Handlers map these to HTTP
// status codes with errors.Is; every constructor tags a human-readable
// message with its kind.
var (
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidState        = errors.New("invalid state")
	ErrMissingPrecondition = errors.New("missing precondition")
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation error")
	ErrConflict            = errors.New("conflict")
)

func PermissionDenied(msg string) error {
	return errors.Join(ErrPermissionDenied, errors.New(msg))
}

func InvalidState(msg string) error {
	return errors.Join(ErrInvalidState, errors.New(msg))
}

func MissingPrecondition(msg string) error {
	return errors.Join(ErrMissingPrecondition, errors.New(msg))
}

func NotFound(msg string) error {
	return errors.Join(ErrNotFound, errors.New(msg))
}

func Validation(msg string) error {
	return errors.Join(ErrValidation, errors.New(msg))
}

func Conflict(msg string) error {
	return errors.Join(ErrConflict, errors.New(msg))
}
