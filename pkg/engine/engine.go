package engine

import (
	"github.com/dmitrymomot/reqguard/pkg/schema"
	"github.com/dmitrymomot/reqguard/pkg/validator"
)

// DefaultMaxDepth bounds object nesting when no WithMaxDepth option is given.
const DefaultMaxDepth = 32

// Option configures a Validator.
type Option func(*options)

type options struct {
	stripUnknown bool
	nestedPaths  bool
	maxDepth     int
}

// WithStripUnknown makes Validate also return Result.Stripped: a copy of the
// input holding only keys declared by the schema. The input is never modified.
func WithStripUnknown() Option {
	return func(o *options) { o.stripUnknown = true }
}

// WithNestedPaths names nested fields by their dotted path ("addr.zip") in
// error messages instead of the bare key.
func WithNestedPaths() Option {
	return func(o *options) { o.nestedPaths = true }
}

// WithMaxDepth limits how deep object fields may nest. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// Validator checks records against schemas. It holds no state besides its
// options and is safe for concurrent use.
type Validator struct {
	opts options
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return &Validator{opts: o}
}

// Validate checks record against s with a one-off Validator.
func Validate(record map[string]any, s *schema.Schema, opts ...Option) Result {
	return New(opts...).Validate(record, s)
}

// Validate checks record against s. It never fails: problems with the record
// and with the schema alike are reported in Result.Errors.
func (v *Validator) Validate(record map[string]any, s *schema.Schema) Result {
	var errs validator.ValidationErrors
	valid := v.object(record, s, "", 0, &errs)

	res := Result{Errors: errs, Record: valid}
	if v.opts.stripUnknown {
		res.Stripped = Strip(record, s)
	}
	return res
}

// object validates one schema level and returns the fields that passed.
// Errors are appended to errs in field declaration order.
func (v *Validator) object(record map[string]any, s *schema.Schema, prefix string, depth int, errs *validator.ValidationErrors) map[string]any {
	valid := make(map[string]any)
	if s == nil {
		return valid
	}

	if len(s.AnyOf) > 0 {
		var group validator.ValidationErrors
		group.Collect(validator.AnyOf(record, s.AnyOf))
		for i := range group {
			group[i].Path = prefix
		}
		*errs = append(*errs, group...)
	}

	for _, f := range s.Fields {
		key, rule := f.Name, f.Rule
		path := joinPath(prefix, key)
		label := key
		if v.opts.nestedPaths {
			label = path
		}

		value, exists := record[key]
		present := validator.IsPresent(value, exists)

		var own validator.ValidationErrors
		if rule.Required && !present {
			own.Collect(validator.Required(label, value, exists))
			*errs = append(*errs, tag(own, key, path)...)
			continue
		}
		if !present {
			continue
		}

		accepted := value
		var nested validator.ValidationErrors
		switch rule.Type {
		case schema.TypeNumber:
			own.Collect(numberRules(label, value, rule)...)
		case schema.TypeString:
			own.Collect(stringRules(label, value, rule)...)
		case schema.TypeDate:
			own.Collect(validator.Date(label, value, rule.DateFormat))
		case schema.TypeObject:
			accepted = v.nested(label, value, rule, path, depth, &own, &nested)
		default:
			own.Collect(validator.Unsupported(label, string(rule.Type)))
		}

		own = tag(own, key, path)
		*errs = append(*errs, own...)
		*errs = append(*errs, nested...)

		if len(own) == 0 && len(nested) == 0 {
			valid[key] = accepted
		}
	}

	return valid
}

// nested validates an object-typed field. Errors of the field itself go to
// own; errors from inside the object go to nested, already tagged with their
// own keys. It returns the validated sub-record.
func (v *Validator) nested(label string, value any, rule schema.FieldRule, path string, depth int, own, nested *validator.ValidationErrors) any {
	if own.Collect(validator.Object(label, value)) > 0 {
		return nil
	}
	if own.Collect(validator.MaxDepth(label, depth+1, v.opts.maxDepth)) > 0 {
		return nil
	}
	return v.object(value.(map[string]any), rule.Properties, path, depth+1, nested)
}

// numberRules lists number checks in reporting order. The plain integer check
// gives way to the phone check when phone is set.
func numberRules(label string, value any, rule schema.FieldRule) []validator.Rule {
	var rules []validator.Rule
	if !rule.Phone {
		rules = append(rules, validator.Integer(label, value))
	}
	if rule.Min != nil {
		rules = append(rules, validator.Min(label, value, *rule.Min))
	}
	if rule.Max != nil {
		rules = append(rules, validator.Max(label, value, *rule.Max))
	}
	if rule.Round {
		if _, numeric := validator.ToNumber(value); numeric {
			rules = append(rules, validator.Rounded(label, value))
		}
	}
	if rule.Phone {
		rules = append(rules, validator.Phone(label, value))
	}
	return rules
}

// stringRules lists string checks in reporting order.
func stringRules(label string, value any, rule schema.FieldRule) []validator.Rule {
	rules := []validator.Rule{validator.String(label, value)}
	if rule.MinLength != nil {
		rules = append(rules, validator.MinLen(label, value, *rule.MinLength))
	}
	if rule.MaxLength != nil {
		rules = append(rules, validator.MaxLen(label, value, *rule.MaxLength))
	}
	if rule.Length != nil {
		rules = append(rules, validator.Len(label, value, *rule.Length))
	}
	if rule.Phone {
		rules = append(rules, validator.Phone(label, value))
	}
	if rule.ValidValues != nil {
		rules = append(rules, validator.OneOf(label, value, rule.ValidValues))
	}
	if rule.Email {
		rules = append(rules, validator.Email(label, value))
	}
	return rules
}

// tag attributes errors to the record key they were produced for.
func tag(errs validator.ValidationErrors, key, path string) validator.ValidationErrors {
	for i := range errs {
		errs[i].Field = key
		errs[i].Path = path
	}
	return errs
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
