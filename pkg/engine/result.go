package engine

import (
	"encoding/json"

	"github.com/dmitrymomot/reqguard/pkg/validator"
)

// Result is the outcome of one validation call.
type Result struct {
	// Errors in schema declaration order, then check order within a field.
	Errors validator.ValidationErrors
	// Record holds the fields that produced no error; object fields hold
	// their recursively validated copy.
	Record map[string]any
	// Stripped is set only with WithStripUnknown.
	Stripped map[string]any
}

// Valid reports whether no errors were found.
func (r Result) Valid() bool {
	return r.Errors.IsEmpty()
}

// Messages returns the error messages, or nil when the record is valid.
func (r Result) Messages() []string {
	return r.Errors.Messages()
}

// Err returns the errors as an error value, or nil when the record is valid.
func (r Result) Err() error {
	if r.Errors.IsEmpty() {
		return nil
	}
	return r.Errors
}

type resultJSON struct {
	Errors          []string       `json:"errors"`
	ValidatedRecord map[string]any `json:"validatedRecord"`
	StrippedRecord  any            `json:"strippedRecord,omitempty"`
}

// MarshalJSON encodes the result as {"errors": [...] | null, "validatedRecord": {...}}.
func (r Result) MarshalJSON() ([]byte, error) {
	record := r.Record
	if record == nil {
		record = map[string]any{}
	}
	out := resultJSON{
		Errors:          r.Messages(),
		ValidatedRecord: record,
	}
	if r.Stripped != nil {
		out.StrippedRecord = r.Stripped
	}
	return json.Marshal(out)
}
