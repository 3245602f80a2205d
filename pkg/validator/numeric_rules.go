package validator

import "fmt"

// Min validates that value coerces to a number greater than or equal to min.
func Min(field string, value any, min float64) Rule {
	return Rule{
		Check: func() bool {
			return AtLeast(value, min)
		},
		Error: fieldError(field, "validation.min",
			fmt.Sprintf("Field %s should be at least %s.", field, FormatNumber(min)),
			map[string]any{"min": min}),
	}
}

// Max validates that value coerces to a number less than or equal to max.
func Max(field string, value any, max float64) Rule {
	return Rule{
		Check: func() bool {
			return AtMost(value, max)
		},
		Error: fieldError(field, "validation.max",
			fmt.Sprintf("Field %s should be at most %s.", field, FormatNumber(max)),
			map[string]any{"max": max}),
	}
}

// Rounded validates that value has no decimal part.
func Rounded(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			return IsRounded(value)
		},
		Error: fieldError(field, "validation.rounded",
			fmt.Sprintf("Field %s should be a rounded number without decimal points.", field), nil),
	}
}
