package schema

import (
	"slices"

	"github.com/dmitrymomot/reqguard/pkg/validator"
)

// Type selects how a field value is checked.
type Type string

const (
	TypeNumber Type = "number"
	TypeString Type = "string"
	TypeDate   Type = "date"
	TypeObject Type = "object"
)

// Valid reports whether t is one of the supported types.
func (t Type) Valid() bool {
	switch t {
	case TypeNumber, TypeString, TypeDate, TypeObject:
		return true
	}
	return false
}

// AnyOfKey is the reserved schema document key holding the anyOf group.
const AnyOfKey = "_anyOf"

// FieldRule describes how one field is validated. Constraint parameters are
// only consulted for the Type they belong to; nil pointers mean "not set".
type FieldRule struct {
	Type     Type
	Required bool

	// number
	Min   *float64
	Max   *float64
	Round bool

	// number and string
	Phone bool

	// string
	MinLength   *int
	MaxLength   *int
	Length      *int
	ValidValues []any
	Email       bool

	// date; empty means dd/mm/yyyy
	DateFormat string

	// object
	Properties *Schema
}

// Field is a named rule. Schemas keep fields in declaration order.
type Field struct {
	Name string
	Rule FieldRule
}

// Schema is an ordered set of field rules plus an optional anyOf group: at
// least one of the AnyOf names must be present in the record.
type Schema struct {
	Fields []Field
	AnyOf  []string
}

// New creates a schema from fields in the given order.
func New(fields ...Field) *Schema {
	return &Schema{Fields: fields}
}

// Add appends a field rule and returns the schema for chaining.
func (s *Schema) Add(name string, rule FieldRule) *Schema {
	s.Fields = append(s.Fields, Field{Name: name, Rule: rule})
	return s
}

// WithAnyOf sets the anyOf group and returns the schema for chaining.
func (s *Schema) WithAnyOf(names ...string) *Schema {
	s.AnyOf = names
	return s
}

// Lookup returns the rule declared for name.
func (s *Schema) Lookup(name string) (FieldRule, bool) {
	if s == nil {
		return FieldRule{}, false
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Rule, true
		}
	}
	return FieldRule{}, false
}

// Has reports whether name is a declared field.
func (s *Schema) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Names returns the declared field names in order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Unsupported returns the dotted paths of fields whose type the engine cannot
// dispatch. Such fields always fail validation with an "Unsupported type" error.
func (s *Schema) Unsupported() []string {
	var paths []string
	s.walk("", make(map[*Schema]bool), func(path string, rule FieldRule) {
		if !rule.Type.Valid() {
			paths = append(paths, path)
		}
	})
	return paths
}

// UnknownDateFormats returns the dotted paths of date fields naming a format
// other than the supported ones. Values of such fields never match.
func (s *Schema) UnknownDateFormats() []string {
	var paths []string
	s.walk("", make(map[*Schema]bool), func(path string, rule FieldRule) {
		if rule.Type == TypeDate && rule.DateFormat != "" && !validator.IsSupportedDateFormat(rule.DateFormat) {
			paths = append(paths, path)
		}
	})
	return paths
}

// walk visits every field depth first. A schema already on the current path
// is not entered again, so self-referencing schemas terminate.
func (s *Schema) walk(prefix string, active map[*Schema]bool, fn func(path string, rule FieldRule)) {
	if s == nil || active[s] {
		return
	}
	active[s] = true
	defer delete(active, s)

	for _, f := range s.Fields {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		fn(path, f.Rule)
		if f.Rule.Type == TypeObject {
			f.Rule.Properties.walk(path, active, fn)
		}
	}
}

// Clone returns a deep copy of the schema. Schemas referenced more than once,
// including self references, map to a single copy.
func (s *Schema) Clone() *Schema {
	return s.clone(make(map[*Schema]*Schema))
}

func (s *Schema) clone(copies map[*Schema]*Schema) *Schema {
	if s == nil {
		return nil
	}
	if c, ok := copies[s]; ok {
		return c
	}

	out := &Schema{
		Fields: make([]Field, len(s.Fields)),
		AnyOf:  slices.Clone(s.AnyOf),
	}
	copies[s] = out
	for i, f := range s.Fields {
		rule := f.Rule
		rule.Min = clonePtr(rule.Min)
		rule.Max = clonePtr(rule.Max)
		rule.MinLength = clonePtr(rule.MinLength)
		rule.MaxLength = clonePtr(rule.MaxLength)
		rule.Length = clonePtr(rule.Length)
		rule.ValidValues = slices.Clone(rule.ValidValues)
		rule.Properties = rule.Properties.clone(copies)
		out.Fields[i] = Field{Name: f.Name, Rule: rule}
	}
	return out
}

// Ptr returns a pointer to v, for optional rule parameters.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
