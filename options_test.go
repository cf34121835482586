package agentloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	t.Run("defaults are zero", func(t *testing.T) {
		o := ApplyOptions()
		assert.Empty(t, o.Model)
		assert.Zero(t, o.MaxTokens)
		assert.Nil(t, o.Temperature)
		assert.Empty(t, o.System)
		assert.Empty(t, o.Tools)
	})

	t.Run("applies all options", func(t *testing.T) {
		tools := []Tool{{Name: "get_time"}}
		o := ApplyOptions(
			WithModel("claude-sonnet-4-5"),
			WithMaxTokens(1024),
			WithTemperature(0.7),
			WithSystem("You are helpful."),
			WithTools(tools),
		)

		assert.Equal(t, "claude-sonnet-4-5", o.Model)
		assert.Equal(t, 1024, o.MaxTokens)
		require.NotNil(t, o.Temperature)
		assert.Equal(t, 0.7, *o.Temperature)
		assert.Equal(t, "You are helpful.", o.System)
		assert.Equal(t, tools, o.Tools)
	})

	t.Run("zero temperature is distinguishable from unset", func(t *testing.T) {
		o := ApplyOptions(WithTemperature(0))
		require.NotNil(t, o.Temperature)
		assert.Equal(t, 0.0, *o.Temperature)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		o := ApplyOptions(WithModel("first"), WithModel("second"))
		assert.Equal(t, "second", o.Model)
	})
}
