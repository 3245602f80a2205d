package validator

import "fmt"

// Phone validates a ten digit phone number given as a number or a string.
func Phone(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			return IsPhone(value)
		},
		Error: fieldError(field, "validation.phone",
			fmt.Sprintf("Field %s should be a valid 10-digit phone number.", field), nil),
	}
}

// Email validates a local@domain.tld shaped address. It is intentionally
// permissive and not RFC 5322 complete.
func Email(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			return IsEmail(value)
		},
		Error: fieldError(field, "validation.email",
			fmt.Sprintf("Field %s should be a valid email address.", field), nil),
	}
}
