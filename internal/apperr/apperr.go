// Package apperr defines the error vocabulary shared by the service and
// handler layers. Services wrap these sentinels with context; handlers map
// them to HTTP statuses in exactly one place.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access denied")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateIdentity  = errors.New("account already exists")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrPastDateTime       = errors.New("cannot book appointments in the past")
)

// Status maps an error chain to the HTTP status it should surface as.
// Anything outside the vocabulary is an internal error.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidReference), errors.Is(err, ErrPastDateTime):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateIdentity):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Internal reports whether err falls outside the vocabulary, meaning its
// detail must not be echoed to the caller.
func Internal(err error) bool {
	return Status(err) == http.StatusInternalServerError
}
