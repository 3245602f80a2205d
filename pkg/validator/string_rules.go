package validator

import "fmt"

func MinLen(field string, value any, min int) Rule {
	return Rule{
		Check: func() bool {
			return LengthAtLeast(value, min)
		},
		Error: fieldError(field, "validation.min_length",
			fmt.Sprintf("Field %s should have at least %d characters.", field, min),
			map[string]any{"min": min}),
	}
}

func MaxLen(field string, value any, max int) Rule {
	return Rule{
		Check: func() bool {
			return LengthAtMost(value, max)
		},
		Error: fieldError(field, "validation.max_length",
			fmt.Sprintf("Field %s should have at most %d characters.", field, max),
			map[string]any{"max": max}),
	}
}

func Len(field string, value any, exact int) Rule {
	return Rule{
		Check: func() bool {
			return LengthExactly(value, exact)
		},
		Error: fieldError(field, "validation.exact_length",
			fmt.Sprintf("Field %s should be only %d characters.", field, exact),
			map[string]any{"length": exact}),
	}
}
