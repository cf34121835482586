package agentloop

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// SchemaFor generates a JSON Schema object from a struct type T.
//
// Field names are taken from json tags and types are mapped to JSON Schema
// types. Additional struct tags refine the schema:
//
//	desc:"..."      sets the property description
//	required:"true" marks the property as required
//	enum:"a,b,c"    restricts a string property to the listed values
//	default:"..."   records the default value
//
// Example:
//
//	type WeatherArgs struct {
//	    City string `json:"city" desc:"City name" required:"true"`
//	    Unit string `json:"unit" desc:"Temperature unit" enum:"celsius,fahrenheit" default:"celsius"`
//	}
func SchemaFor[T any]() (json.RawMessage, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return json.RawMessage(`{"type":"object","properties":{}}`), nil
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %s is not a struct type", t.Kind())
	}

	schema, err := schemaForStruct(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(schema)
}

// MustSchemaFor is like SchemaFor but panics on error.
func MustSchemaFor[T any]() json.RawMessage {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

func schemaForStruct(t reflect.Type) (map[string]any, error) {
	properties := map[string]any{}
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if name == "" {
			name = field.Name
		}

		prop, err := schemaForType(field.Type)
		if err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", name, err)
		}

		if desc := field.Tag.Get("desc"); desc != "" {
			prop["description"] = desc
		}
		if enum := field.Tag.Get("enum"); enum != "" {
			values := strings.Split(enum, ",")
			list := make([]any, len(values))
			for i, v := range values {
				list[i] = v
			}
			prop["enum"] = list
		}
		if def := field.Tag.Get("default"); def != "" {
			prop["default"] = def
		}
		if field.Tag.Get("required") == "true" {
			required = append(required, name)
		}

		properties[name] = prop
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema, nil
}

func schemaForType(t reflect.Type) (map[string]any, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}, nil

	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}, nil

	case reflect.Bool:
		return map[string]any{"type": "boolean"}, nil

	case reflect.Slice, reflect.Array:
		items, err := schemaForType(t.Elem())
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": "array", "items": items}, nil

	case reflect.Struct:
		return schemaForStruct(t)

	case reflect.Map:
		return map[string]any{"type": "object"}, nil

	default:
		return nil, fmt.Errorf("unsupported kind %s", t.Kind())
	}
}
