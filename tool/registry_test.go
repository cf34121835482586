package tool

import (
	"context"
	"errors"
	"testing"

	ai "github.com/cmathias/agentloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	t.Run("registers tool successfully", func(t *testing.T) {
		r := NewRegistry()
		testTool := ai.Tool{Name: "test_tool", Description: "A test tool"}
		handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
			return "result", nil
		}

		err := r.Register(testTool, handler)

		assert.NoError(t, err)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("returns error for duplicate registration", func(t *testing.T) {
		r := NewRegistry()
		testTool := ai.Tool{Name: "test_tool"}
		handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
			return "result", nil
		}

		require.NoError(t, r.Register(testTool, handler))
		err := r.Register(testTool, handler)

		var dup *ErrToolAlreadyRegistered
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "test_tool", dup.Name)
	})
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(ai.Tool{Name: "known", Source: "Somewhere"},
		func(ctx context.Context, call ai.ToolCall) (string, error) {
			return "ok", nil
		})

	t.Run("Get returns registered handler", func(t *testing.T) {
		handler, ok := r.Get("known")
		assert.True(t, ok)
		assert.NotNil(t, handler)
	})

	t.Run("Get reports missing tool", func(t *testing.T) {
		_, ok := r.Get("unknown")
		assert.False(t, ok)
	})

	t.Run("GetTool returns definition with metadata", func(t *testing.T) {
		def, ok := r.GetTool("known")
		assert.True(t, ok)
		assert.Equal(t, "Somewhere", def.Source)
	})

	t.Run("Has", func(t *testing.T) {
		assert.True(t, r.Has("known"))
		assert.False(t, r.Has("unknown"))
	})

	t.Run("Names and Tools", func(t *testing.T) {
		assert.Equal(t, []string{"known"}, r.Names())
		require.Len(t, r.Tools(), 1)
		assert.Equal(t, "known", r.Tools()[0].Name)
	})
}

func TestRegistry_Execute(t *testing.T) {
	t.Run("returns handler output", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(ai.Tool{Name: "greet"},
			func(ctx context.Context, call ai.ToolCall) (string, error) {
				return "hello", nil
			})

		result, err := r.Execute(context.Background(), ai.ToolCall{ID: "c1", Name: "greet"})

		require.NoError(t, err)
		assert.Equal(t, "c1", result.ToolCallID)
		assert.Equal(t, "hello", result.Content)
		assert.False(t, result.IsError)
	})

	t.Run("converts handler error into error result", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(ai.Tool{Name: "boom"},
			func(ctx context.Context, call ai.ToolCall) (string, error) {
				return "", errors.New("it broke")
			})

		result, err := r.Execute(context.Background(), ai.ToolCall{ID: "c1", Name: "boom"})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "it broke", result.Content)
	})

	t.Run("unknown tool returns ErrToolNotFound", func(t *testing.T) {
		r := NewRegistry()

		_, err := r.Execute(context.Background(), ai.ToolCall{Name: "missing"})

		var notFound *ErrToolNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "missing", notFound.Name)
	})
}

func TestFunc_TypedRegistration(t *testing.T) {
	type echoArgs struct {
		Message string `json:"message" desc:"Message to echo" required:"true"`
	}

	reg := Func("echo", "Echo the input",
		func(ctx context.Context, args echoArgs) (string, error) {
			return "echo: " + args.Message, nil
		},
	).WithSource("Test", "https://example.com")

	assert.Equal(t, "echo", reg.Tool.Name)
	assert.Equal(t, "Test", reg.Tool.Source)
	assert.Equal(t, "https://example.com", reg.Tool.SourceURL)
	assert.Contains(t, string(reg.Tool.Parameters), `"message"`)

	t.Run("unmarshals arguments", func(t *testing.T) {
		out, err := reg.Handler(context.Background(), ai.ToolCall{Arguments: `{"message":"hi"}`})
		require.NoError(t, err)
		assert.Equal(t, "echo: hi", out)
	})

	t.Run("rejects malformed arguments", func(t *testing.T) {
		_, err := reg.Handler(context.Background(), ai.ToolCall{Arguments: `{`})
		assert.Error(t, err)
	})
}

func TestRegistry_Add(t *testing.T) {
	r := NewRegistry().Add(
		Func("a", "first", func(ctx context.Context, args struct{}) (string, error) { return "a", nil }),
		Func("b", "second", func(ctx context.Context, args struct{}) (string, error) { return "b", nil }),
	)

	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Has("a"))
	assert.True(t, r.Has("b"))
}

func TestRegisterFunc(t *testing.T) {
	r := NewRegistry()
	err := RegisterFunc(r, "double", "Double a number",
		func(ctx context.Context, args struct {
			N int `json:"n" required:"true"`
		}) (string, error) {
			return "ok", nil
		})

	require.NoError(t, err)
	def, ok := r.GetTool("double")
	require.True(t, ok)
	assert.Contains(t, string(def.Parameters), `"n"`)
}

func TestBuiltins(t *testing.T) {
	r := NewRegistry().Add(Builtins()...)

	assert.Equal(t, 4, r.Len())
	for _, name := range []string{"get_weather", "web_search", "calculate", "get_time"} {
		assert.True(t, r.Has(name), name)
	}
}
