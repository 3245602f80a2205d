package validator

import (
	"math"
	"reflect"
	"regexp"
	"strings"
)

// Date format names accepted by IsValidDate.
const (
	DateDMYSlash = "dd/mm/yyyy"
	DateDMYDash  = "dd-mm-yyyy"
	DateMDYSlash = "mm/dd/yyyy"
	DateMDYDash  = "mm-dd-yyyy"
	DateYMDSlash = "yyyy/mm/dd"
	DateYMDDash  = "yyyy-mm-dd"

	// DefaultDateFormat applies when a rule names no format.
	DefaultDateFormat = DateDMYSlash
)

const (
	dayPattern   = `(0[1-9]|[12][0-9]|3[01])`
	monthPattern = `(0[1-9]|1[0-2])`
	yearPattern  = `\d{4}`
)

var (
	// Exactly ten ASCII digits
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

	// Permissive local@domain.tld shape
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Structural day/month ranges only; calendar correctness is not checked.
	datePatterns = map[string]*regexp.Regexp{
		DateDMYSlash: regexp.MustCompile(`^` + dayPattern + `/` + monthPattern + `/` + yearPattern + `$`),
		DateDMYDash:  regexp.MustCompile(`^` + dayPattern + `-` + monthPattern + `-` + yearPattern + `$`),
		DateMDYSlash: regexp.MustCompile(`^` + monthPattern + `/` + dayPattern + `/` + yearPattern + `$`),
		DateMDYDash:  regexp.MustCompile(`^` + monthPattern + `-` + dayPattern + `-` + yearPattern + `$`),
		DateYMDSlash: regexp.MustCompile(`^` + yearPattern + `/` + monthPattern + `/` + dayPattern + `$`),
		DateYMDDash:  regexp.MustCompile(`^` + yearPattern + `-` + monthPattern + `-` + dayPattern + `$`),
	}
)

// IsInteger reports whether value is a whole number: a numeric value without
// fractional part, or a string holding such a number in plain (non-exponent)
// notation, e.g. "10" or "10.0".
func IsInteger(value any) bool {
	var (
		f  float64
		ok bool
	)
	switch v := value.(type) {
	case string:
		f, ok = parseNumber(v, plainNumberRegex)
	default:
		f, ok = ToNumber(value)
	}
	return ok && !math.IsInf(f, 0) && f == math.Trunc(f)
}

// IsString reports whether value is textual.
func IsString(value any) bool {
	_, ok := value.(string)
	return ok
}

// IsPhone reports whether the text form of value is exactly ten digits.
func IsPhone(value any) bool {
	return phoneRegex.MatchString(ToText(value))
}

// IsEmail reports whether the text form of value looks like an email address.
func IsEmail(value any) bool {
	return emailRegex.MatchString(ToText(value))
}

// IsValidDate reports whether the text form of value matches format. An empty
// format means DefaultDateFormat; unknown formats never match.
func IsValidDate(value any, format string) bool {
	if format == "" {
		format = DefaultDateFormat
	}
	pattern, ok := datePatterns[format]
	if !ok {
		return false
	}
	return pattern.MatchString(ToText(value))
}

// IsSupportedDateFormat reports whether format names one of the known patterns.
func IsSupportedDateFormat(format string) bool {
	_, ok := datePatterns[format]
	return ok
}

// AtLeast reports whether value coerces to a number >= min.
func AtLeast(value any, min float64) bool {
	f, ok := ToNumber(value)
	return ok && f >= min
}

// AtMost reports whether value coerces to a number <= max.
func AtMost(value any, max float64) bool {
	f, ok := ToNumber(value)
	return ok && f <= max
}

// IsRounded reports whether value coerces to a number without decimal part.
func IsRounded(value any) bool {
	f, ok := ToNumber(value)
	return ok && !math.IsInf(f, 0) && f == math.Trunc(f)
}

func LengthAtLeast(value any, n int) bool {
	l, ok := LengthOf(value)
	return ok && l >= n
}

func LengthAtMost(value any, n int) bool {
	l, ok := LengthOf(value)
	return ok && l <= n
}

func LengthExactly(value any, n int) bool {
	l, ok := LengthOf(value)
	return ok && l == n
}

// IsOneOf reports whether value equals one of allowed. Numbers compare by
// value regardless of their Go type, everything else compares with ==.
func IsOneOf(value any, allowed []any) bool {
	for _, candidate := range allowed {
		if sameValue(value, candidate) {
			return true
		}
	}
	return false
}

func sameValue(a, b any) bool {
	_, aText := a.(string)
	_, bText := b.(string)
	if !aText && !bText {
		af, aok := ToNumber(a)
		bf, bok := ToNumber(b)
		if aok && bok {
			return af == bf
		}
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// joinValues renders values as "v1, v2, v3".
func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = ToText(v)
	}
	return strings.Join(parts, ", ")
}
