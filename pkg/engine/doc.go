// Package engine validates records against schemas.
//
// A record is a map[string]any as produced by decoding a JSON object. For each
// schema level the engine checks the anyOf group once, then walks the fields
// in declaration order: a missing required field reports one error and is
// skipped, a present field is checked by the rules of its type, and object
// fields recurse into their properties. Every failing check is reported; the
// engine never stops at the first error.
//
// The validated record contains exactly the fields that produced no error
// while they were checked. For object fields this includes every error from
// inside the object, so one bad nested value removes the whole object.
//
//	res := engine.Validate(record, s, engine.WithStripUnknown())
//	if !res.Valid() {
//		return res.Messages()
//	}
//	forward(res.Record)
//
// Nested errors are reported flat: the message names the nested key only,
// unless WithNestedPaths is set. ValidationError.Path always carries the
// dotted location.
package engine
