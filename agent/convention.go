package agent

import (
	"encoding/json"
	"fmt"

	ai "github.com/cmathias/agentloop"
	"github.com/cmathias/agentloop/prompt"
)

// Convention captures how a model provider requests tools. The loop itself
// is identical for every provider; only the request encoding and response
// parsing differ, so those live behind this strategy interface.
type Convention interface {
	// Name identifies the convention ("textual" or "structured").
	Name() string

	// System returns the system instruction for the run.
	System(tools []ai.Tool) string

	// NativeTools returns the tools to declare to the provider natively,
	// or nil when the convention documents tools in the system instruction
	// instead.
	NativeTools(tools []ai.Tool) []ai.Tool

	// ParseToolCall extracts at most one tool invocation from a response.
	// known reports whether a tool name is registered.
	ParseToolCall(resp *ai.Response, known func(name string) bool) (*ai.ToolCall, bool)

	// StripMarkup removes residual tool markup from final text.
	StripMarkup(text string) string

	// AssistantMessage shapes the assistant turn appended to the conversation.
	AssistantMessage(resp *ai.Response, call *ai.ToolCall) ai.Message

	// ResultMessage shapes the message that feeds a tool result back to the
	// model on the next call.
	ResultMessage(call ai.ToolCall, content string) ai.Message

	// DefaultMaxSteps is the iteration cap when the caller does not override it.
	DefaultMaxSteps() int
}

// defaultMaxSteps is the shared iteration cap. The two conventions
// deliberately use one consistent value; callers tune it per run with
// WithMaxSteps.
const defaultMaxSteps = 5

// textual is the convention for models without native tool calling: tools
// are documented in the system instruction and invocations are parsed from
// <tool>name|key=value</tool> spans in the reply text.
type textual struct{}

// Textual returns the free-text tool-calling convention.
func Textual() Convention { return textual{} }

func (textual) Name() string { return "textual" }

func (textual) System(tools []ai.Tool) string {
	return prompt.BuildSystem(tools)
}

func (textual) NativeTools([]ai.Tool) []ai.Tool { return nil }

func (textual) ParseToolCall(resp *ai.Response, known func(string) bool) (*ai.ToolCall, bool) {
	inv, ok := prompt.ParseInvocation(resp.Content, known)
	if !ok {
		return nil, false
	}

	args, err := json.Marshal(inv.Args)
	if err != nil {
		return nil, false
	}

	return &ai.ToolCall{
		ID:        ai.GenerateCallID(),
		Name:      inv.Name,
		Arguments: string(args),
	}, true
}

func (textual) StripMarkup(text string) string {
	return prompt.StripMarkup(text)
}

func (textual) AssistantMessage(resp *ai.Response, _ *ai.ToolCall) ai.Message {
	return ai.Message{Role: ai.RoleAssistant, Content: resp.Content}
}

func (textual) ResultMessage(call ai.ToolCall, content string) ai.Message {
	// Tool results travel as user-role text on this path; the model has no
	// native tool_result block to receive them in.
	return ai.NewUserMessage(fmt.Sprintf("Tool result for %s:\n%s", call.Name, content))
}

func (textual) DefaultMaxSteps() int { return defaultMaxSteps }

// structured is the convention for providers with native tool calling: tool
// schemas are declared on the request and invocations arrive as typed tool
// call blocks, so no free-text parsing is needed.
type structured struct{}

// Structured returns the provider-native tool-calling convention.
func Structured() Convention { return structured{} }

func (structured) Name() string { return "structured" }

func (structured) System([]ai.Tool) string {
	return "You are a helpful assistant. Use the provided tools when they help answer the user, " +
		"at most one tool per turn. After receiving a tool result, answer the user in plain text."
}

func (structured) NativeTools(tools []ai.Tool) []ai.Tool { return tools }

func (structured) ParseToolCall(resp *ai.Response, _ func(string) bool) (*ai.ToolCall, bool) {
	if len(resp.ToolCalls) == 0 {
		return nil, false
	}
	// One tool per turn: additional calls in the same reply are ignored and
	// the model re-requests them on the next iteration if still needed.
	call := resp.ToolCalls[0]
	return &call, true
}

func (structured) StripMarkup(text string) string {
	// Native replies should carry no markup, but a model that saw textual
	// examples in its context can still echo stray tags.
	return prompt.StripMarkup(text)
}

func (structured) AssistantMessage(resp *ai.Response, call *ai.ToolCall) ai.Message {
	msg := ai.Message{Role: ai.RoleAssistant, Content: resp.Content}
	if call != nil {
		msg.ToolCalls = []ai.ToolCall{*call}
	}
	return msg
}

func (structured) ResultMessage(call ai.ToolCall, content string) ai.Message {
	return ai.NewToolResultMessage(ai.ToolResult{
		ToolCallID: call.ID,
		Content:    content,
	})
}

func (structured) DefaultMaxSteps() int { return defaultMaxSteps }
