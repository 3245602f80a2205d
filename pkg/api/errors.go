package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/reqguard/pkg/binder"
)

var (
	ErrSchemaNotFound   = errors.New("schema not found")
	ErrInvalidParameter = errors.New("invalid query parameter")
	ErrRouteNotFound    = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// BodyError converts a binder error into an HTTPError with a matching status.
func BodyError(err error) HTTPError {
	code := "invalid_body"
	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		code = "body_too_large"
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		code = "unsupported_media_type"
	}
	return HTTPError{Status: binder.StatusCode(err), Code: code, Err: err}
}

func schemaNotFound(name string) HTTPError {
	return HTTPError{
		Status: http.StatusNotFound,
		Code:   "schema_not_found",
		Err:    fmt.Errorf("%w: %s", ErrSchemaNotFound, name),
	}
}

func invalidParameter(name string, err error) HTTPError {
	return HTTPError{
		Status: http.StatusBadRequest,
		Code:   "invalid_parameter",
		Err:    fmt.Errorf("%w: %s: %v", ErrInvalidParameter, name, err),
	}
}
