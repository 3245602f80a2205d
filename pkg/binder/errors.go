package binder

import (
	"errors"
	"net/http"
)

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrEmptyBody            = errors.New("empty request body")
	ErrNotAnObject          = errors.New("request body must be a JSON object")
	ErrBodyTooLarge         = errors.New("request body too large")
)

// StatusCode maps a binding error to the HTTP status a handler should answer with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedMediaType), errors.Is(err, ErrMissingContentType):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}
