// Package validator provides the leaf checks used by the schema engine: pure
// predicates over loosely typed values (numbers, strings, dates, phone numbers,
// email addresses, enumerations) and Rule constructors that pair a predicate
// with a field-tagged, translation-friendly error.
//
// Values are whatever a JSON decoder or a caller put into a record, so every
// predicate accepts `any` and coerces leniently: numeric strings count as
// numbers, integers in any Go numeric kind count as integers, and everything
// is rendered to text before pattern checks run.
//
// # Usage
//
//	var errs validator.ValidationErrors
//	errs.Collect(
//	    validator.Integer("age", v),
//	    validator.Min("age", v, 18),
//	    validator.Max("age", v, 65),
//	)
//	if !errs.IsEmpty() {
//	    fmt.Println(errs.Messages())
//	}
//
// # Messages
//
// Messages use fixed English wording ("Field age should be at least 18.") that
// downstream consumers match on. TranslationKey and TranslationValues carry
// the same information for callers that render their own text.
//
// # Error Handling
//
// ValidationErrors implements error for callers that report failures as a
// single value. Each ValidationError names the record key it belongs to in
// Field; schema-level errors leave Field empty.
package validator
