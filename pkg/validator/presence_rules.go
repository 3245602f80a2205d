package validator

import (
	"fmt"
	"strings"
)

// Required validates that a field was supplied with a non-nil value.
func Required(field string, value any, exists bool) Rule {
	return Rule{
		Check: func() bool {
			return IsPresent(value, exists)
		},
		Error: fieldError(field, "validation.required",
			fmt.Sprintf("Field %s is required.", field), nil),
	}
}

// AnyOf validates that at least one of fields is present in record. The error
// belongs to the schema level, so its Field is empty.
func AnyOf(record map[string]any, fields []string) Rule {
	return Rule{
		Check: func() bool {
			for _, name := range fields {
				value, ok := record[name]
				if IsPresent(value, ok) {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("At least one of the following fields is required: %s.", strings.Join(fields, ", ")),
			TranslationKey: "validation.any_of",
			TranslationValues: map[string]any{
				"fields": fields,
			},
		},
	}
}
