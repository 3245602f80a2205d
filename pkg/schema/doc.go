// Package schema defines declarative record schemas and loads them from JSON
// or YAML documents.
//
// A schema document maps field names to field rules. Field order in the
// document is preserved because validation reports errors in declaration
// order. The reserved key "_anyOf" names a group of fields of which at least
// one must be present:
//
//	_anyOf: [phone_number, policy_number]
//	phone_number: {type: number, phone: true}
//	policy_number: {type: string, minLength: 5}
//	name: {type: string, required: true}
//	address:
//	  type: object
//	  properties:
//	    zip: {type: string, length: 5}
//
// Supported types are number, string, date and object. Other type names are
// accepted by the parsers so that a schema stays loadable; Unsupported lists
// them and the engine reports them per field at validation time. Unknown rule
// keys are rejected.
//
// Schemas are collected from a Source (a directory, an fs.FS or an S3 bucket)
// into a Registry that serves them by name.
package schema
