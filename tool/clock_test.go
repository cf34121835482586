package tool

import (
	"context"
	"testing"
	"time"

	ai "github.com/cmathias/agentloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockTool(t *testing.T) {
	fixed := time.Date(2025, time.March, 14, 15, 9, 0, 0, time.UTC)
	reg := NewClockTool(WithNow(func() time.Time { return fixed }))

	assert.Equal(t, "get_time", reg.Tool.Name)
	assert.Equal(t, "Server System Clock", reg.Tool.Source)

	out, err := reg.Handler(context.Background(), ai.ToolCall{Arguments: `{}`})

	require.NoError(t, err)
	assert.Equal(t, "**Friday, March 14, 2025** at **3:09 PM**", out)
}
