package domain

import "errors"

// Sentinel errors shared across services. The API layer maps each of these
// to a single HTTP status code in the central error handler.
var (
	ErrUnauthenticated = errors.New("missing or invalid credentials")
	ErrForbidden       = errors.New("access forbidden")
	ErrValidation      = errors.New("validation failed")

	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already in use")
	ErrProjectNotFound = errors.New("project not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrRequestNotFound = errors.New("service request not found")
	ErrMessageNotFound = errors.New("message not found")
)
