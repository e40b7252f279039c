package domain

import "errors"

// Error taxonomy shared by all services. Handlers map these onto HTTP
// statuses; anything that does not match is treated as a storage failure.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
)
