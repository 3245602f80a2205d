package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqguard/pkg/schema"
)

func TestType_Valid(t *testing.T) {
	t.Parallel()

	for _, typ := range []schema.Type{schema.TypeNumber, schema.TypeString, schema.TypeDate, schema.TypeObject} {
		assert.True(t, typ.Valid(), typ)
	}
	assert.False(t, schema.Type("array").Valid())
	assert.False(t, schema.Type("").Valid())
}

func TestSchema_Lookup(t *testing.T) {
	t.Parallel()

	s := schema.New(
		schema.Field{Name: "a", Rule: schema.FieldRule{Type: schema.TypeString}},
		schema.Field{Name: "b", Rule: schema.FieldRule{Type: schema.TypeNumber}},
	)

	rule, ok := s.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, schema.TypeNumber, rule.Type)

	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))
	assert.Equal(t, []string{"a", "b"}, s.Names())

	var nilSchema *schema.Schema
	assert.False(t, nilSchema.Has("a"))
	assert.Nil(t, nilSchema.Names())
}

func TestSchema_Clone(t *testing.T) {
	t.Parallel()

	original := schema.New().
		Add("age", schema.FieldRule{Type: schema.TypeNumber, Min: schema.Ptr(18.0)}).
		Add("plan", schema.FieldRule{Type: schema.TypeString, ValidValues: []any{"free"}}).
		Add("addr", schema.FieldRule{Type: schema.TypeObject, Properties: schema.New().
			Add("zip", schema.FieldRule{Type: schema.TypeString, Length: schema.Ptr(5)})}).
		WithAnyOf("age")

	clone := original.Clone()
	require.Equal(t, original, clone)

	*clone.Fields[0].Rule.Min = 21
	clone.Fields[1].Rule.ValidValues[0] = "pro"
	*clone.Fields[2].Rule.Properties.Fields[0].Rule.Length = 9
	clone.AnyOf[0] = "plan"

	assert.Equal(t, 18.0, *original.Fields[0].Rule.Min)
	assert.Equal(t, []any{"free"}, original.Fields[1].Rule.ValidValues)
	assert.Equal(t, 5, *original.Fields[2].Rule.Properties.Fields[0].Rule.Length)
	assert.Equal(t, []string{"age"}, original.AnyOf)

	var nilSchema *schema.Schema
	assert.Nil(t, nilSchema.Clone())
}

func TestSchema_Unsupported(t *testing.T) {
	t.Parallel()

	s := schema.New().
		Add("ok", schema.FieldRule{Type: schema.TypeString}).
		Add("list", schema.FieldRule{Type: "array"})

	assert.Equal(t, []string{"list"}, s.Unsupported())
	assert.Empty(t, schema.New().Add("a", schema.FieldRule{Type: schema.TypeDate}).Unsupported())
}

func TestSchema_UnknownDateFormats(t *testing.T) {
	t.Parallel()

	s := schema.New().
		Add("dob", schema.FieldRule{Type: schema.TypeDate, DateFormat: "yyyy-mm-dd"}).
		Add("joined", schema.FieldRule{Type: schema.TypeDate}).
		Add("meta", schema.FieldRule{Type: schema.TypeObject, Properties: schema.New().
			Add("seen", schema.FieldRule{Type: schema.TypeDate, DateFormat: "dd.mm.yyyy"})}).
		Add("note", schema.FieldRule{Type: schema.TypeString, DateFormat: "whatever"})

	assert.Equal(t, []string{"meta.seen"}, s.UnknownDateFormats())
}

func TestSchema_SelfReference(t *testing.T) {
	t.Parallel()

	tree := schema.New().Add("value", schema.FieldRule{Type: "tuple"})
	tree.Add("child", schema.FieldRule{Type: schema.TypeObject, Properties: tree})

	t.Run("clone keeps the cycle", func(t *testing.T) {
		clone := tree.Clone()
		require.NotSame(t, tree, clone)
		child, ok := clone.Lookup("child")
		require.True(t, ok)
		assert.Same(t, clone, child.Properties)
	})

	t.Run("unsupported visits each field once per path", func(t *testing.T) {
		assert.Equal(t, []string{"value"}, tree.Unsupported())
	})

	t.Run("cannot be encoded", func(t *testing.T) {
		_, err := json.Marshal(tree)
		assert.ErrorIs(t, err, schema.ErrInvalidSchema)
	})

	t.Run("registry accepts it", func(t *testing.T) {
		reg := schema.NewRegistry(map[string]*schema.Schema{"tree": tree})
		assert.Equal(t, []string{"value", "child"}, reg.MustGet("tree").Names())
	})
}

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user", schema.Name("user.json"))
	assert.Equal(t, "user", schema.Name("schemas/user.yaml"))
	assert.Equal(t, "create-order", schema.Name(`dir\create-order.yml`))
	assert.Equal(t, "noext", schema.Name("noext"))
}
