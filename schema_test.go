package agentloop

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSchema(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	return schema
}

func TestSchemaFor(t *testing.T) {
	t.Run("string fields with tags", func(t *testing.T) {
		type args struct {
			City string `json:"city" desc:"City name" required:"true"`
			Unit string `json:"unit" desc:"Temperature unit" enum:"celsius,fahrenheit" default:"celsius"`
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		schema := decodeSchema(t, raw)
		assert.Equal(t, "object", schema["type"])

		props := schema["properties"].(map[string]any)
		city := props["city"].(map[string]any)
		assert.Equal(t, "string", city["type"])
		assert.Equal(t, "City name", city["description"])

		unit := props["unit"].(map[string]any)
		assert.Equal(t, []any{"celsius", "fahrenheit"}, unit["enum"])
		assert.Equal(t, "celsius", unit["default"])

		assert.Equal(t, []any{"city"}, schema["required"])
	})

	t.Run("numeric and boolean kinds", func(t *testing.T) {
		type args struct {
			Count   int     `json:"count"`
			Ratio   float64 `json:"ratio"`
			Enabled bool    `json:"enabled"`
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		props := decodeSchema(t, raw)["properties"].(map[string]any)
		assert.Equal(t, "integer", props["count"].(map[string]any)["type"])
		assert.Equal(t, "number", props["ratio"].(map[string]any)["type"])
		assert.Equal(t, "boolean", props["enabled"].(map[string]any)["type"])
	})

	t.Run("slices and nested structs", func(t *testing.T) {
		type inner struct {
			Name string `json:"name"`
		}
		type args struct {
			Tags  []string `json:"tags"`
			Inner inner    `json:"inner"`
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		props := decodeSchema(t, raw)["properties"].(map[string]any)
		tags := props["tags"].(map[string]any)
		assert.Equal(t, "array", tags["type"])
		assert.Equal(t, "string", tags["items"].(map[string]any)["type"])

		nested := props["inner"].(map[string]any)
		assert.Equal(t, "object", nested["type"])
	})

	t.Run("skips unexported and ignored fields", func(t *testing.T) {
		type args struct {
			Public string `json:"public"`
			Hidden string `json:"-"`
			secret string
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		props := decodeSchema(t, raw)["properties"].(map[string]any)
		assert.Contains(t, props, "public")
		assert.NotContains(t, props, "Hidden")
		assert.NotContains(t, props, "secret")
	})

	t.Run("empty struct yields empty properties", func(t *testing.T) {
		type args struct{}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		schema := decodeSchema(t, raw)
		assert.Equal(t, "object", schema["type"])
		assert.Empty(t, schema["properties"])
	})

	t.Run("non-struct type is rejected", func(t *testing.T) {
		_, err := SchemaFor[string]()
		assert.Error(t, err)
	})
}

func TestMustSchemaFor(t *testing.T) {
	t.Run("returns schema for valid type", func(t *testing.T) {
		type args struct {
			Query string `json:"query"`
		}
		assert.NotPanics(t, func() {
			raw := MustSchemaFor[args]()
			assert.NotEmpty(t, raw)
		})
	})

	t.Run("panics for invalid type", func(t *testing.T) {
		assert.Panics(t, func() {
			MustSchemaFor[int]()
		})
	})
}
