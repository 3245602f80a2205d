package validator

import "fmt"

func Integer(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			return IsInteger(value)
		},
		Error: fieldError(field, "validation.integer",
			fmt.Sprintf("Field %s should be an integer.", field), nil),
	}
}

func String(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			return IsString(value)
		},
		Error: fieldError(field, "validation.string",
			fmt.Sprintf("Field %s should be a string.", field), nil),
	}
}

// Object validates that value is a record (map[string]any).
func Object(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			_, ok := value.(map[string]any)
			return ok
		},
		Error: fieldError(field, "validation.object",
			fmt.Sprintf("Field %s should be an object.", field), nil),
	}
}

// Unsupported always fails; it reports a rule type the engine cannot dispatch.
func Unsupported(field, typ string) Rule {
	return Rule{
		Check: func() bool { return false },
		Error: fieldError(field, "validation.unsupported_type",
			fmt.Sprintf("Unsupported type %s for field %s.", typ, field),
			map[string]any{"type": typ}),
	}
}

// MaxDepth validates that a nested object at depth does not exceed limit.
func MaxDepth(field string, depth, limit int) Rule {
	return Rule{
		Check: func() bool {
			return depth <= limit
		},
		Error: fieldError(field, "validation.max_depth",
			fmt.Sprintf("Field %s exceeds the maximum nesting depth of %d.", field, limit),
			map[string]any{"max_depth": limit}),
	}
}
