package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Envelope is the JSON body of non-validation responses.
type Envelope struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// HTTPError is an error with a status code and a stable machine readable code.
type HTTPError struct {
	Status int
	Code   string
	Err    error
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e HTTPError) Unwrap() error { return e.Err }

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes data in an Envelope with status 200.
func WriteData(w http.ResponseWriter, data any, meta map[string]any) {
	WriteJSON(w, http.StatusOK, Envelope{Data: data, Meta: meta})
}

// WriteError writes err in an Envelope. HTTPError values keep their status and
// code; anything else is reported as a 500 without exposing its message.
func WriteError(w http.ResponseWriter, err error) {
	var httpErr HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = HTTPError{Status: http.StatusInternalServerError, Code: "internal_error"}
		err = nil
	}
	detail := &ErrorDetail{Code: httpErr.Code, Message: http.StatusText(httpErr.Status)}
	if err != nil {
		detail.Message = err.Error()
	}
	WriteJSON(w, httpErr.Status, Envelope{Error: detail})
}
