package engine_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqguard/pkg/engine"
	"github.com/dmitrymomot/reqguard/pkg/schema"
)

func TestValidate_Scenarios(t *testing.T) {
	t.Parallel()

	t.Run("missing required field", func(t *testing.T) {
		s := schema.New().Add("name", schema.FieldRule{Type: schema.TypeString, Required: true})

		res := engine.Validate(map[string]any{}, s)

		assert.Equal(t, []string{"Field name is required."}, res.Messages())
		assert.Equal(t, map[string]any{}, res.Record)
	})

	t.Run("number above max", func(t *testing.T) {
		s := schema.New().Add("age", schema.FieldRule{
			Type: schema.TypeNumber,
			Min:  schema.Ptr(18.0),
			Max:  schema.Ptr(65.0),
		})

		res := engine.Validate(map[string]any{"age": 70}, s)

		assert.Equal(t, []string{"Field age should be at most 65."}, res.Messages())
		assert.Equal(t, map[string]any{}, res.Record)
	})

	t.Run("phone number as number", func(t *testing.T) {
		s := schema.New().Add("phone", schema.FieldRule{Type: schema.TypeNumber, Phone: true})

		res := engine.Validate(map[string]any{"phone": 1234567890}, s)

		assert.Nil(t, res.Messages())
		assert.Equal(t, map[string]any{"phone": 1234567890}, res.Record)
	})

	t.Run("anyOf with no candidate present", func(t *testing.T) {
		s := schema.New().
			Add("a", schema.FieldRule{Type: schema.TypeString}).
			Add("b", schema.FieldRule{Type: schema.TypeString}).
			WithAnyOf("a", "b")

		res := engine.Validate(map[string]any{}, s)

		assert.Equal(t, []string{"At least one of the following fields is required: a, b."}, res.Messages())
	})

	t.Run("nested object failure excludes parent", func(t *testing.T) {
		s := schema.New().Add("addr", schema.FieldRule{
			Type: schema.TypeObject,
			Properties: schema.New().Add("zip", schema.FieldRule{
				Type:   schema.TypeString,
				Length: schema.Ptr(5),
			}),
		})

		res := engine.Validate(map[string]any{"addr": map[string]any{"zip": "123"}}, s)

		assert.Equal(t, []string{"Field zip should be only 5 characters."}, res.Messages())
		assert.Equal(t, map[string]any{}, res.Record)
	})

	t.Run("valid email", func(t *testing.T) {
		s := schema.New().Add("email", schema.FieldRule{Type: schema.TypeString, Email: true})

		res := engine.Validate(map[string]any{"email": "a@b.com"}, s)

		assert.Nil(t, res.Messages())
		assert.Equal(t, map[string]any{"email": "a@b.com"}, res.Record)
	})
}

func TestValidate_ErrorOrder(t *testing.T) {
	t.Parallel()

	s := schema.New().
		Add("name", schema.FieldRule{Type: schema.TypeString, Required: true, MinLength: schema.Ptr(3)}).
		Add("age", schema.FieldRule{Type: schema.TypeNumber, Min: schema.Ptr(18.0), Round: true}).
		Add("code", schema.FieldRule{Type: schema.TypeString, MinLength: schema.Ptr(10), MaxLength: schema.Ptr(2)}).
		WithAnyOf("email", "phone")

	res := engine.Validate(map[string]any{"age": "12.5", "code": 12345}, s)

	assert.Equal(t, []string{
		"At least one of the following fields is required: email, phone.",
		"Field name is required.",
		"Field age should be an integer.",
		"Field age should be at least 18.",
		"Field age should be a rounded number without decimal points.",
		"Field code should be a string.",
		"Field code should have at least 10 characters.",
		"Field code should have at most 2 characters.",
	}, res.Messages())
	assert.Empty(t, res.Record)

	assert.Equal(t, []string{"name", "age", "code"}, res.Errors.Fields())
	assert.Empty(t, res.Errors[0].Field, "anyOf errors belong to no field")
}

func TestValidate_RequiredSkipsFurtherChecks(t *testing.T) {
	t.Parallel()

	s := schema.New().Add("code", schema.FieldRule{
		Type:      schema.TypeString,
		Required:  true,
		MinLength: schema.Ptr(3),
		Email:     true,
	})

	for _, record := range []map[string]any{{}, {"code": nil}} {
		res := engine.Validate(record, s)
		assert.Equal(t, []string{"Field code is required."}, res.Messages())
		assert.NotContains(t, res.Record, "code")
	}
}

func TestValidate_OptionalMissingFieldIsOmitted(t *testing.T) {
	t.Parallel()

	s := schema.New().
		Add("nickname", schema.FieldRule{Type: schema.TypeString}).
		Add("name", schema.FieldRule{Type: schema.TypeString})

	res := engine.Validate(map[string]any{"name": "John", "nickname": nil}, s)

	assert.True(t, res.Valid())
	assert.Equal(t, map[string]any{"name": "John"}, res.Record)
}

func TestValidate_FieldAssociationIsStructural(t *testing.T) {
	t.Parallel()

	// "name" is a substring of "username"; only the failing field is dropped.
	s := schema.New().
		Add("name", schema.FieldRule{Type: schema.TypeString}).
		Add("username", schema.FieldRule{Type: schema.TypeString, MinLength: schema.Ptr(5)})

	res := engine.Validate(map[string]any{"name": "Al", "username": "al"}, s)

	assert.Equal(t, []string{"Field username should have at least 5 characters."}, res.Messages())
	assert.Equal(t, map[string]any{"name": "Al"}, res.Record)
}

func TestValidate_AnyOf(t *testing.T) {
	t.Parallel()

	s := schema.New().
		Add("phone_number", schema.FieldRule{Type: schema.TypeNumber, Phone: true}).
		Add("policy_number", schema.FieldRule{Type: schema.TypeString, MinLength: schema.Ptr(5)}).
		Add("name", schema.FieldRule{Type: schema.TypeString, Required: true}).
		WithAnyOf("phone_number", "policy_number")

	t.Run("satisfied by phone", func(t *testing.T) {
		res := engine.Validate(map[string]any{"name": "John", "phone_number": 1234567899}, s)
		assert.True(t, res.Valid())
		assert.Equal(t, map[string]any{"name": "John", "phone_number": 1234567899}, res.Record)
	})

	t.Run("satisfied by a failing candidate", func(t *testing.T) {
		res := engine.Validate(map[string]any{"name": "John", "policy_number": "POL"}, s)
		assert.Equal(t, []string{"Field policy_number should have at least 5 characters."}, res.Messages())
		assert.Equal(t, map[string]any{"name": "John"}, res.Record)
	})

	t.Run("violation does not exclude other fields", func(t *testing.T) {
		res := engine.Validate(map[string]any{"name": "John"}, s)
		assert.Equal(t, []string{"At least one of the following fields is required: phone_number, policy_number."}, res.Messages())
		assert.Equal(t, map[string]any{"name": "John"}, res.Record)
	})

	t.Run("reported once alongside other errors", func(t *testing.T) {
		res := engine.Validate(map[string]any{}, s)
		assert.Equal(t, []string{
			"At least one of the following fields is required: phone_number, policy_number.",
			"Field name is required.",
		}, res.Messages())
	})

	t.Run("mixed value kinds", func(t *testing.T) {
		res := engine.Validate(map[string]any{"name": "John", "phone_number": "1234567890", "policy_number": "POL123"}, s)
		assert.True(t, res.Valid())
		assert.Len(t, res.Record, 3)
	})
}

func TestValidate_Number(t *testing.T) {
	t.Parallel()

	t.Run("integer check accepts numeric strings", func(t *testing.T) {
		s := schema.New().Add("qty", schema.FieldRule{Type: schema.TypeNumber})
		res := engine.Validate(map[string]any{"qty": "10"}, s)
		assert.True(t, res.Valid())
		assert.Equal(t, "10", res.Record["qty"])
	})

	t.Run("non numeric value fails integer and bounds", func(t *testing.T) {
		s := schema.New().Add("qty", schema.FieldRule{
			Type: schema.TypeNumber,
			Min:  schema.Ptr(1.0),
			Max:  schema.Ptr(5.0),
		})
		res := engine.Validate(map[string]any{"qty": "abc"}, s)
		assert.Equal(t, []string{
			"Field qty should be an integer.",
			"Field qty should be at least 1.",
			"Field qty should be at most 5.",
		}, res.Messages())
	})

	t.Run("round is skipped for non numeric values", func(t *testing.T) {
		s := schema.New().Add("qty", schema.FieldRule{Type: schema.TypeNumber, Round: true})
		res := engine.Validate(map[string]any{"qty": "abc"}, s)
		assert.Equal(t, []string{"Field qty should be an integer."}, res.Messages())
	})

	t.Run("phone replaces the integer check", func(t *testing.T) {
		s := schema.New().Add("phone", schema.FieldRule{Type: schema.TypeNumber, Phone: true})
		res := engine.Validate(map[string]any{"phone": "12345"}, s)
		assert.Equal(t, []string{"Field phone should be a valid 10-digit phone number."}, res.Messages())
	})

	t.Run("round still applies with phone", func(t *testing.T) {
		s := schema.New().Add("phone", schema.FieldRule{Type: schema.TypeNumber, Phone: true, Round: true})
		res := engine.Validate(map[string]any{"phone": 12345.5}, s)
		assert.Equal(t, []string{
			"Field phone should be a rounded number without decimal points.",
			"Field phone should be a valid 10-digit phone number.",
		}, res.Messages())
	})

	t.Run("json numbers are accepted", func(t *testing.T) {
		s := schema.New().Add("age", schema.FieldRule{Type: schema.TypeNumber, Min: schema.Ptr(18.0)})
		res := engine.Validate(map[string]any{"age": json.Number("42")}, s)
		assert.True(t, res.Valid())
		assert.Equal(t, json.Number("42"), res.Record["age"])
	})
}

func TestValidate_String(t *testing.T) {
	t.Parallel()

	s := schema.New().Add("plan", schema.FieldRule{
		Type:        schema.TypeString,
		ValidValues: []any{"free", "pro"},
	})

	t.Run("accepts allowed value", func(t *testing.T) {
		res := engine.Validate(map[string]any{"plan": "pro"}, s)
		assert.True(t, res.Valid())
	})

	t.Run("rejects other values", func(t *testing.T) {
		res := engine.Validate(map[string]any{"plan": "gold"}, s)
		assert.Equal(t, []string{"Field plan should be one of the valid values: free, pro."}, res.Messages())
	})

	t.Run("string phone", func(t *testing.T) {
		s := schema.New().Add("phone", schema.FieldRule{Type: schema.TypeString, Phone: true})
		res := engine.Validate(map[string]any{"phone": 1234567890}, s)
		assert.Equal(t, []string{"Field phone should be a string."}, res.Messages())
	})
}

func TestValidate_Date(t *testing.T) {
	t.Parallel()

	t.Run("default format", func(t *testing.T) {
		s := schema.New().Add("dob", schema.FieldRule{Type: schema.TypeDate})
		assert.True(t, engine.Validate(map[string]any{"dob": "31/02/2024"}, s).Valid())

		res := engine.Validate(map[string]any{"dob": "2024-02-01"}, s)
		assert.Equal(t, []string{"Field dob should be a valid date in the format dd/mm/yyyy."}, res.Messages())
	})

	t.Run("explicit format", func(t *testing.T) {
		s := schema.New().Add("dob", schema.FieldRule{Type: schema.TypeDate, DateFormat: "yyyy-mm-dd"})
		assert.True(t, engine.Validate(map[string]any{"dob": "2024-02-01"}, s).Valid())
	})

	t.Run("unsupported format always fails", func(t *testing.T) {
		s := schema.New().Add("dob", schema.FieldRule{Type: schema.TypeDate, DateFormat: "yyyy.mm.dd"})
		res := engine.Validate(map[string]any{"dob": "2024.02.01"}, s)
		assert.Equal(t, []string{"Field dob should be a valid date in the format yyyy.mm.dd."}, res.Messages())
	})
}

func TestValidate_Object(t *testing.T) {
	t.Parallel()

	address := schema.New().
		Add("street", schema.FieldRule{Type: schema.TypeString, Required: true}).
		Add("zip", schema.FieldRule{Type: schema.TypeString, Length: schema.Ptr(5)})
	s := schema.New().
		Add("name", schema.FieldRule{Type: schema.TypeString}).
		Add("addr", schema.FieldRule{Type: schema.TypeObject, Properties: address})

	t.Run("embeds the validated copy", func(t *testing.T) {
		record := map[string]any{
			"name": "John",
			"addr": map[string]any{"street": "Main", "zip": "12345", "extra": true},
		}

		res := engine.Validate(record, s)

		require.True(t, res.Valid())
		assert.Equal(t, map[string]any{
			"name": "John",
			"addr": map[string]any{"street": "Main", "zip": "12345"},
		}, res.Record)
		assert.Contains(t, record["addr"], "extra", "input must not be modified")
	})

	t.Run("nested errors are flattened and tagged", func(t *testing.T) {
		res := engine.Validate(map[string]any{"name": "John", "addr": map[string]any{"zip": "1"}}, s)

		assert.Equal(t, []string{
			"Field street is required.",
			"Field zip should be only 5 characters.",
		}, res.Messages())
		assert.Equal(t, map[string]any{"name": "John"}, res.Record)

		assert.Equal(t, "street", res.Errors[0].Field)
		assert.Equal(t, "addr.street", res.Errors[0].Path)
		assert.Equal(t, "addr.zip", res.Errors[1].Path)
	})

	t.Run("nested paths in messages", func(t *testing.T) {
		res := engine.Validate(map[string]any{"addr": map[string]any{"street": "Main", "zip": "1"}}, s, engine.WithNestedPaths())
		assert.Equal(t, []string{"Field addr.zip should be only 5 characters."}, res.Messages())
	})

	t.Run("non object value", func(t *testing.T) {
		for _, value := range []any{"street", 42, []any{"a"}} {
			res := engine.Validate(map[string]any{"addr": value}, s)
			assert.Equal(t, []string{"Field addr should be an object."}, res.Messages())
			assert.NotContains(t, res.Record, "addr")
		}
	})

	t.Run("nil properties yields an empty object", func(t *testing.T) {
		s := schema.New().Add("meta", schema.FieldRule{Type: schema.TypeObject})
		res := engine.Validate(map[string]any{"meta": map[string]any{"k": "v"}}, s)
		assert.True(t, res.Valid())
		assert.Equal(t, map[string]any{"meta": map[string]any{}}, res.Record)
	})

	t.Run("nested anyOf excludes the parent", func(t *testing.T) {
		contact := schema.New().
			Add("email", schema.FieldRule{Type: schema.TypeString}).
			Add("phone", schema.FieldRule{Type: schema.TypeString}).
			WithAnyOf("email", "phone")
		s := schema.New().Add("contact", schema.FieldRule{Type: schema.TypeObject, Properties: contact})

		res := engine.Validate(map[string]any{"contact": map[string]any{}}, s)

		assert.Equal(t, []string{"At least one of the following fields is required: email, phone."}, res.Messages())
		assert.Equal(t, "contact", res.Errors[0].Path)
		assert.Empty(t, res.Record)
	})
}

func TestValidate_UnsupportedType(t *testing.T) {
	t.Parallel()

	s := schema.New().
		Add("tags", schema.FieldRule{Type: "array"}).
		Add("name", schema.FieldRule{Type: schema.TypeString})

	res := engine.Validate(map[string]any{"tags": []any{"a"}, "name": "John"}, s)

	assert.Equal(t, []string{"Unsupported type array for field tags."}, res.Messages())
	assert.Equal(t, map[string]any{"name": "John"}, res.Record)
}

func TestValidate_MaxDepth(t *testing.T) {
	t.Parallel()

	leaf := schema.New().Add("v", schema.FieldRule{Type: schema.TypeString})
	mid := schema.New().Add("c", schema.FieldRule{Type: schema.TypeObject, Properties: leaf})
	root := schema.New().Add("b", schema.FieldRule{Type: schema.TypeObject, Properties: mid})

	record := map[string]any{"b": map[string]any{"c": map[string]any{"v": "x"}}}

	assert.True(t, engine.Validate(record, root, engine.WithMaxDepth(2)).Valid())

	res := engine.Validate(record, root, engine.WithMaxDepth(1))
	assert.Equal(t, []string{"Field c exceeds the maximum nesting depth of 1."}, res.Messages())
	assert.Empty(t, res.Record)

	t.Run("self referencing schema terminates", func(t *testing.T) {
		loop := schema.New()
		loop.Add("next", schema.FieldRule{Type: schema.TypeObject, Properties: loop})

		deep := map[string]any{}
		cur := deep
		for range engine.DefaultMaxDepth + 5 {
			next := map[string]any{}
			cur["next"] = next
			cur = next
		}

		res := engine.Validate(deep, loop)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0].Message, "exceeds the maximum nesting depth of 32")
	})
}

func TestValidate_NilInputs(t *testing.T) {
	t.Parallel()

	res := engine.Validate(nil, schema.New().Add("a", schema.FieldRule{Type: schema.TypeString, Required: true}))
	assert.Equal(t, []string{"Field a is required."}, res.Messages())

	res = engine.Validate(map[string]any{"a": 1}, nil)
	assert.True(t, res.Valid())
	assert.Equal(t, map[string]any{}, res.Record)
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()

	s := schema.New().
		Add("name", schema.FieldRule{Type: schema.TypeString, Required: true, MaxLength: schema.Ptr(10)}).
		Add("age", schema.FieldRule{Type: schema.TypeNumber, Min: schema.Ptr(18.0)}).
		Add("dob", schema.FieldRule{Type: schema.TypeDate, DateFormat: "yyyy-mm-dd"}).
		Add("addr", schema.FieldRule{Type: schema.TypeObject, Properties: schema.New().
			Add("zip", schema.FieldRule{Type: schema.TypeString, Length: schema.Ptr(5)})})

	record := map[string]any{
		"name": "John",
		"age":  "12",
		"dob":  "2001-01-01",
		"addr": map[string]any{"zip": "12345", "x": 1},
		"junk": true,
	}

	first := engine.Validate(record, s)
	require.False(t, first.Valid())

	second := engine.Validate(first.Record, s)
	assert.True(t, second.Valid())
	assert.Equal(t, first.Record, second.Record)
}

func TestStrip(t *testing.T) {
	t.Parallel()

	s := schema.New().
		Add("name", schema.FieldRule{Type: schema.TypeString}).
		Add("addr", schema.FieldRule{Type: schema.TypeObject, Properties: schema.New().
			Add("zip", schema.FieldRule{Type: schema.TypeString})}).
		Add("meta", schema.FieldRule{Type: schema.TypeObject})

	record := map[string]any{
		"name":  "John",
		"extra": 1,
		"addr":  map[string]any{"zip": "12345", "city": "X"},
		"meta":  "not an object",
	}

	t.Run("keeps declared keys only", func(t *testing.T) {
		out := engine.Strip(record, s)
		assert.Equal(t, map[string]any{
			"name": "John",
			"addr": map[string]any{"zip": "12345"},
			"meta": "not an object",
		}, out)
		assert.Contains(t, record, "extra")
		assert.Contains(t, record["addr"], "city")
	})

	t.Run("strip option fills Stripped", func(t *testing.T) {
		res := engine.Validate(record, s, engine.WithStripUnknown())
		assert.Equal(t, engine.Strip(record, s), res.Stripped)

		res = engine.Validate(record, s)
		assert.Nil(t, res.Stripped)
	})
}

func TestResult(t *testing.T) {
	t.Parallel()

	s := schema.New().Add("name", schema.FieldRule{Type: schema.TypeString, Required: true})

	t.Run("valid result", func(t *testing.T) {
		res := engine.Validate(map[string]any{"name": "John", "x": 1}, s)
		assert.NoError(t, res.Err())

		data, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{"errors":null,"validatedRecord":{"name":"John"}}`, string(data))
	})

	t.Run("invalid result", func(t *testing.T) {
		res := engine.Validate(map[string]any{"x": 1}, s, engine.WithStripUnknown())
		require.Error(t, res.Err())

		data, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{"errors":["Field name is required."],"validatedRecord":{},"strippedRecord":{}}`, string(data))
	})
}

func TestValidator_Reusable(t *testing.T) {
	t.Parallel()

	v := engine.New(engine.WithNestedPaths(), engine.WithMaxDepth(0))
	s := schema.New().Add("a", schema.FieldRule{Type: schema.TypeObject, Properties: schema.New().
		Add("b", schema.FieldRule{Type: schema.TypeNumber})})

	res := v.Validate(map[string]any{"a": map[string]any{"b": "x"}}, s)
	assert.Equal(t, []string{"Field a.b should be an integer."}, res.Messages())

	res = v.Validate(map[string]any{"a": map[string]any{"b": 1}}, s)
	assert.True(t, res.Valid())
}
