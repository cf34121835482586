// Package agent implements the tool-calling loop: call the model, execute
// the tool it requests, feed the result back, repeat until the model answers
// in plain text or the iteration cap is reached. Progress is delivered as
// [stream.Event] values on a channel, ready to be encoded as NDJSON.
package agent

import (
	"context"
	"encoding/json"

	ai "github.com/cmathias/agentloop"
	"github.com/cmathias/agentloop/chat"
	"github.com/cmathias/agentloop/stream"
	"github.com/cmathias/agentloop/tool"
)

// duplicateCallResult is fed back to the model when it requests a tool call
// identical to one already executed in the same run.
const duplicateCallResult = "Tool already executed with identical arguments. See the previous result."

// Agent orchestrates tool-calling conversations against one chat client.
// It holds no per-request state; every Run owns its own conversation,
// iteration counter, and duplicate-invocation set.
type Agent struct {
	chatClient chat.Client
	registry   *tool.Registry
	convention Convention
}

// New creates an Agent with the given chat client, tool registry, and
// tool-calling convention.
func New(c chat.Client, registry *tool.Registry, conv Convention) *Agent {
	return &Agent{
		chatClient: c,
		registry:   registry,
		convention: conv,
	}
}

// Run executes the agent loop for one user message and returns a channel of
// stream events. The channel is closed after the terminal event (complete or
// error). Cancelling ctx stops the loop; no further model or tool calls are
// attempted once the consumer is gone.
func (a *Agent) Run(ctx context.Context, message string, opts ...Option) <-chan stream.Event {
	ch := make(chan stream.Event, 16)
	go a.runLoop(ctx, message, ch, opts...)
	return ch
}

func (a *Agent) runLoop(ctx context.Context, message string, ch chan<- stream.Event, opts ...Option) {
	defer close(ch)

	options := applyOptions(a.convention, opts...)

	tools := a.registry.Tools()
	chatOpts := []ai.Option{ai.WithSystem(a.convention.System(tools))}
	if native := a.convention.NativeTools(tools); len(native) > 0 {
		chatOpts = append(chatOpts, ai.WithTools(native))
	}
	chatOpts = append(chatOpts, options.ChatOptions...)

	// The conversation is owned by this run and only ever grows.
	history := []ai.Message{ai.NewUserMessage(message)}
	executed := make(map[string]bool)

	for step := 1; step <= options.MaxSteps; step++ {
		resp, err := a.chatClient.Chat(ctx, history, chatOpts...)
		if err != nil {
			// Upstream failure is fatal to this run: no retry, terminal
			// error event, stream closes.
			emit(ctx, ch, stream.ErrorEvent(err.Error()))
			return
		}

		call, ok := a.convention.ParseToolCall(resp, a.registry.Has)
		if !ok {
			// Plain-text answer: natural end of the loop.
			if text := a.convention.StripMarkup(resp.Content); text != "" {
				if !emit(ctx, ch, stream.TextEvent(text)) {
					return
				}
			}
			emit(ctx, ch, stream.CompleteEvent())
			return
		}

		history = append(history, a.convention.AssistantMessage(resp, call))

		sig := callSignature(*call)
		if executed[sig] {
			// Identical invocation already ran in this request: do not
			// re-execute or re-announce it, just point the model at the
			// previous result.
			history = append(history, a.convention.ResultMessage(*call, duplicateCallResult))
			continue
		}
		executed[sig] = true

		if !emit(ctx, ch, stream.ToolCallEvent(call.ID, call.Name, parseArgs(call.Arguments))) {
			return
		}

		result, err := a.registry.Execute(ctx, *call)
		if err != nil {
			// Unknown tool on the structured path; the registry error text
			// becomes the result so the model can recover.
			result = ai.ToolResult{
				ToolCallID: call.ID,
				Content:    err.Error(),
				IsError:    true,
			}
		}

		def, _ := a.registry.GetTool(call.Name)
		if !emit(ctx, ch, stream.ToolResultEvent(call.ID, call.Name, result.Content, def.Source, def.SourceURL)) {
			return
		}

		history = append(history, a.convention.ResultMessage(*call, result.Content))
	}

	// Iteration cap reached. The cap bounds worst-case latency and cost; it
	// ends the stream successfully rather than as a failure.
	emit(ctx, ch, stream.CompleteEvent())
}

// emit delivers an event unless the consumer is gone. Returns false when the
// context was cancelled before the event could be sent.
func emit(ctx context.Context, ch chan<- stream.Event, ev stream.Event) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// callSignature computes the duplicate-suppression key for an invocation:
// the tool name plus its canonicalized argument object. encoding/json
// marshals map keys in sorted order, which makes the encoding canonical.
func callSignature(call ai.ToolCall) string {
	var args any
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return call.Name + "|" + call.Arguments
	}
	canonical, err := json.Marshal(args)
	if err != nil {
		return call.Name + "|" + call.Arguments
	}
	return call.Name + "|" + string(canonical)
}

// parseArgs decodes the argument JSON for the tool_call announcement.
func parseArgs(arguments string) map[string]any {
	var args map[string]any
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil
	}
	return args
}
