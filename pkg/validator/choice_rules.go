package validator

import "fmt"

// OneOf validates that value equals one of the allowed values.
func OneOf(field string, value any, allowed []any) Rule {
	return Rule{
		Check: func() bool {
			return IsOneOf(value, allowed)
		},
		Error: fieldError(field, "validation.in_list",
			fmt.Sprintf("Field %s should be one of the valid values: %s.", field, joinValues(allowed)),
			map[string]any{"allowed_values": allowed}),
	}
}
