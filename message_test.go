package agentloop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleConstants(t *testing.T) {
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
	assert.Equal(t, Role("system"), RoleSystem)
	assert.Equal(t, Role("tool"), RoleTool)
}

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("Hello")
	assert.Equal(t, RoleUser, msg.Role)
	assert.Equal(t, "Hello", msg.Content)
	assert.Empty(t, msg.ToolCalls)
	assert.Empty(t, msg.ToolResults)
}

func TestNewToolResultMessage(t *testing.T) {
	msg := NewToolResultMessage(
		ToolResult{ToolCallID: "call_1", Content: "72°F"},
		ToolResult{ToolCallID: "call_2", Content: "not found", IsError: true},
	)
	assert.Equal(t, RoleTool, msg.Role)
	assert.Len(t, msg.ToolResults, 2)
	assert.Equal(t, "call_1", msg.ToolResults[0].ToolCallID)
	assert.True(t, msg.ToolResults[1].IsError)
}

func TestGenerateCallID(t *testing.T) {
	id1 := GenerateCallID()
	id2 := GenerateCallID()

	assert.True(t, strings.HasPrefix(id1, "call-"))
	assert.NotEqual(t, id1, id2)
}

func TestUsageAdd(t *testing.T) {
	u := Usage{InputTokens: 100, OutputTokens: 50}
	u.Add(Usage{InputTokens: 10, OutputTokens: 5})

	assert.Equal(t, 110, u.InputTokens)
	assert.Equal(t, 55, u.OutputTokens)
}

func TestResponseStruct(t *testing.T) {
	t.Run("creates response with content", func(t *testing.T) {
		resp := Response{
			Content:      "Hello!",
			FinishReason: "stop",
			Usage:        Usage{InputTokens: 10, OutputTokens: 5},
		}
		assert.Equal(t, "Hello!", resp.Content)
		assert.Equal(t, "stop", resp.FinishReason)
		assert.Empty(t, resp.ToolCalls)
	})

	t.Run("creates response with tool calls", func(t *testing.T) {
		resp := Response{
			FinishReason: "tool_use",
			ToolCalls: []ToolCall{
				{ID: "call_1", Name: "get_weather", Arguments: `{"city":"Paris"}`},
			},
		}
		assert.Len(t, resp.ToolCalls, 1)
		assert.Equal(t, "get_weather", resp.ToolCalls[0].Name)
	})
}
