package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// object is a decoded document mapping that remembers key order.
type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object {
	return &object{values: make(map[string]any)}
}

func (o *object) set(key string, value any) error {
	if _, exists := o.values[key]; exists {
		return fmt.Errorf("duplicate key %q", key)
	}
	o.keys = append(o.keys, key)
	o.values[key] = value
	return nil
}

// decodeJSON reads a single JSON document into ordered objects, []any and
// scalars (string, json.Number, bool, nil).
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON document")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := newObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			value, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			if err := obj.set(key, value); err != nil {
				return nil, err
			}
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		items := []any{}
		for dec.More() {
			item, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}

// maxYAMLNodes bounds the number of nodes a YAML schema document may expand
// to once aliases are resolved.
const maxYAMLNodes = 100000

// decodeYAML reads a YAML document into the same shapes as decodeJSON.
func decodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, errors.New("empty YAML document")
	}
	return yamlValue(&doc)
}

func yamlValue(n *yaml.Node) (any, error) {
	d := &yamlDecoder{expanding: make(map[*yaml.Node]bool)}
	return d.value(n)
}

// yamlDecoder resolves aliases while rejecting recursive anchors and
// documents that expand past maxYAMLNodes. expanding holds the collection
// nodes currently being decoded.
type yamlDecoder struct {
	expanding map[*yaml.Node]bool
	nodes     int
}

func (d *yamlDecoder) value(n *yaml.Node) (any, error) {
	d.nodes++
	if d.nodes > maxYAMLNodes {
		return nil, fmt.Errorf("%w: document expands to more than %d nodes", ErrInvalidSchema, maxYAMLNodes)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, errors.New("empty YAML document")
		}
		return d.value(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
		}
		if d.expanding[n.Alias] {
			return nil, fmt.Errorf("%w: line %d: alias %q refers to itself", ErrInvalidSchema, n.Line, n.Value)
		}
		return d.value(n.Alias)
	case yaml.MappingNode:
		d.expanding[n] = true
		defer delete(d.expanding, n)

		obj := newObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			v, err := d.value(value)
			if err != nil {
				return nil, err
			}
			if err := obj.set(key.Value, v); err != nil {
				return nil, fmt.Errorf("line %d: %w", key.Line, err)
			}
		}
		return obj, nil
	case yaml.SequenceNode:
		d.expanding[n] = true
		defer delete(d.expanding, n)

		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.value(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// build converts a decoded document into a Schema. path is the dotted
// location used in error messages.
func build(doc any, path string) (*Schema, error) {
	obj, ok := doc.(*object)
	if !ok {
		return nil, invalid(path, "schema must be an object")
	}

	s := &Schema{}
	for _, key := range obj.keys {
		value := obj.values[key]
		if key == AnyOfKey {
			names, err := stringList(value)
			if err != nil {
				return nil, invalid(join(path, key), err.Error())
			}
			s.AnyOf = names
			continue
		}

		rule, err := buildRule(value, join(path, key))
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, Field{Name: key, Rule: rule})
	}
	return s, nil
}

func buildRule(doc any, path string) (FieldRule, error) {
	var rule FieldRule

	obj, ok := doc.(*object)
	if !ok {
		return rule, invalid(path, "field rule must be an object")
	}

	if _, ok := obj.values["type"]; !ok {
		return rule, invalid(path, "missing type")
	}

	for _, key := range obj.keys {
		value := obj.values[key]
		var err error
		switch key {
		case "type":
			var t string
			t, err = stringValue(value)
			rule.Type = Type(t)
		case "required":
			rule.Required, err = boolValue(value)
		case "round":
			rule.Round, err = boolValue(value)
		case "phone":
			rule.Phone, err = boolValue(value)
		case "email":
			rule.Email, err = boolValue(value)
		case "min":
			rule.Min, err = numberPtr(value)
		case "max":
			rule.Max, err = numberPtr(value)
		case "minLength":
			rule.MinLength, err = countPtr(value)
		case "maxLength":
			rule.MaxLength, err = countPtr(value)
		case "length":
			rule.Length, err = countPtr(value)
		case "validValues":
			rule.ValidValues, err = scalarList(value)
		case "dateFormat":
			rule.DateFormat, err = stringValue(value)
		case "properties":
			rule.Properties, err = build(value, path)
			if err != nil {
				return rule, err
			}
		default:
			return rule, invalid(path, fmt.Sprintf("unknown rule key %q", key))
		}
		if err != nil {
			return rule, invalid(path, fmt.Sprintf("%s: %v", key, err))
		}
	}
	return rule, nil
}

func invalid(path, reason string) error {
	if path == "" {
		return fmt.Errorf("%w: %s", ErrInvalidSchema, reason)
	}
	return fmt.Errorf("%w: field %q: %s", ErrInvalidSchema, path, reason)
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func stringValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("expected a string")
	}
	return s, nil
}

func boolValue(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, errors.New("expected a boolean")
	}
	return b, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n)
	}
	return 0, false
}

func numberPtr(v any) (*float64, error) {
	f, ok := number(v)
	if !ok {
		return nil, errors.New("expected a number")
	}
	return &f, nil
}

func countPtr(v any) (*int, error) {
	f, ok := number(v)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return nil, errors.New("expected a non-negative integer")
	}
	n := int(f)
	return &n, nil
}

func stringList(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errors.New("expected a list of field names")
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errors.New("expected a list of field names")
		}
		names = append(names, s)
	}
	return names, nil
}

// scalarList normalizes numbers to float64 so values from JSON and YAML
// documents compare the same way.
func scalarList(v any) ([]any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errors.New("expected a list of values")
	}
	values := make([]any, 0, len(items))
	for _, item := range items {
		switch s := item.(type) {
		case string, bool:
			values = append(values, s)
		default:
			f, ok := number(item)
			if !ok {
				return nil, errors.New("values must be strings, numbers or booleans")
			}
			values = append(values, f)
		}
	}
	return values, nil
}
