package validator

import "fmt"

// Date validates that value matches one of the supported date layouts.
// An empty format falls back to DefaultDateFormat.
func Date(field string, value any, format string) Rule {
	if format == "" {
		format = DefaultDateFormat
	}
	return Rule{
		Check: func() bool {
			return IsValidDate(value, format)
		},
		Error: fieldError(field, "validation.date",
			fmt.Sprintf("Field %s should be a valid date in the format %s.", field, format),
			map[string]any{"format": format}),
	}
}
