// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrValidation          = errors.New("validation failed")
	ErrConflict            = errors.New("request already in progress")
	ErrUpstreamRejected    = errors.New("upstream rejected request")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// StatusFor maps a domain error to the HTTP status reported to API callers.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity, "Validation Failed"
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, ErrUpstreamRejected):
		return http.StatusBadRequest, "Rejected"
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusBadGateway, "Bad Gateway"
	default:
		return http.StatusInternalServerError, "Internal Error"
	}
}

// RespondError maps domain errors to RFC7807 responses. detail is shown to
// the caller as-is, so it must already be user-safe.
func RespondError(w http.ResponseWriter, err error, detail string) {
	status, title := StatusFor(err)
	if status == http.StatusInternalServerError {
		detail = ""
	}
	Problem(w, status, title, detail)
}
