package validator

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation error with translation support.
//
// Field is the record key the error belongs to at its own nesting level; it is
// empty for schema-level errors such as an unmet anyOf group. Path is the dotted
// location of the field from the record root (e.g. "addr.zip").
type ValidationError struct {
	Field             string
	Path              string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		if err.Field == "" {
			parts = append(parts, err.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

// Collect evaluates rules in order, appends the error of every failing rule
// and returns the number of failures.
func (ve *ValidationErrors) Collect(rules ...Rule) int {
	failed := 0
	for _, rule := range rules {
		if !rule.Check() {
			*ve = append(*ve, rule.Error)
			failed++
		}
	}
	return failed
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if err.Field == "" || seen[err.Field] {
			continue
		}
		fields = append(fields, err.Field)
		seen[err.Field] = true
	}
	return fields
}

// Messages returns the messages in the order they were recorded, or nil when
// the collection is empty.
func (ve ValidationErrors) Messages() []string {
	if len(ve) == 0 {
		return nil
	}
	messages := make([]string, len(ve))
	for i, err := range ve {
		messages[i] = err.Message
	}
	return messages
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// fieldError builds the error every rule in this package reports. Messages
// follow the "Field {name} ..." wording consumers match on.
func fieldError(field, key, message string, values map[string]any) ValidationError {
	if values == nil {
		values = make(map[string]any, 1)
	}
	values["field"] = field
	return ValidationError{
		Field:             field,
		Path:              field,
		Message:           message,
		TranslationKey:    key,
		TranslationValues: values,
	}
}
