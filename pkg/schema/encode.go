package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON decodes a schema document, keeping field declaration order.
func (s *Schema) UnmarshalJSON(data []byte) error {
	doc, err := decodeJSON(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	parsed, err := build(doc, "")
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// UnmarshalYAML decodes a schema document, keeping field declaration order.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	doc, err := yamlValue(node)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToParseYAML, err)
	}
	parsed, err := build(doc, "")
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// MarshalJSON encodes the schema in the document format accepted by the
// parsers, with fields in declaration order and the anyOf group first. A
// schema that contains itself cannot be encoded.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.encode(&buf, make(map[*Schema]bool)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Schema) encode(buf *bytes.Buffer, active map[*Schema]bool) error {
	if s == nil {
		buf.WriteString("null")
		return nil
	}
	if active[s] {
		return fmt.Errorf("%w: schema references itself", ErrInvalidSchema)
	}
	active[s] = true
	defer delete(active, s)

	buf.WriteByte('{')
	first := true
	if len(s.AnyOf) > 0 {
		if err := writeMember(buf, AnyOfKey, s.AnyOf); err != nil {
			return err
		}
		first = false
	}
	for _, f := range s.Fields {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeKey(buf, f.Name); err != nil {
			return err
		}
		if err := f.Rule.encode(buf, active); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// MarshalJSON encodes the rule with only the parameters that are set.
func (r FieldRule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.encode(&buf, make(map[*Schema]bool)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r FieldRule) encode(buf *bytes.Buffer, active map[*Schema]bool) error {
	buf.WriteByte('{')
	if err := writeMember(buf, "type", r.Type); err != nil {
		return err
	}

	members := []struct {
		key   string
		set   bool
		value any
	}{
		{"required", r.Required, true},
		{"min", r.Min != nil, r.Min},
		{"max", r.Max != nil, r.Max},
		{"round", r.Round, true},
		{"phone", r.Phone, true},
		{"minLength", r.MinLength != nil, r.MinLength},
		{"maxLength", r.MaxLength != nil, r.MaxLength},
		{"length", r.Length != nil, r.Length},
		{"validValues", r.ValidValues != nil, r.ValidValues},
		{"email", r.Email, true},
		{"dateFormat", r.DateFormat != "", r.DateFormat},
	}
	for _, m := range members {
		if !m.set {
			continue
		}
		buf.WriteByte(',')
		if err := writeMember(buf, m.key, m.value); err != nil {
			return err
		}
	}
	if r.Properties != nil {
		buf.WriteByte(',')
		if err := writeKey(buf, "properties"); err != nil {
			return err
		}
		if err := r.Properties.encode(buf, active); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := writeKey(buf, key); err != nil {
		return err
	}
	buf.Write(v)
	return nil
}
