package engine

import "github.com/dmitrymomot/reqguard/pkg/schema"

// Strip returns a new record holding only the keys of record that s declares.
// Object-typed fields holding a record are stripped recursively against their
// properties. record itself is not modified.
func Strip(record map[string]any, s *schema.Schema) map[string]any {
	out := make(map[string]any)
	if s == nil {
		return out
	}

	for _, f := range s.Fields {
		value, ok := record[f.Name]
		if !ok {
			continue
		}
		if nested, isRecord := value.(map[string]any); isRecord && f.Rule.Type == schema.TypeObject {
			out[f.Name] = Strip(nested, f.Rule.Properties)
			continue
		}
		out[f.Name] = value
	}
	return out
}
