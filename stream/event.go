// Package stream implements the NDJSON event protocol used to deliver agent
// loop progress to clients: one JSON object per line, written to the HTTP
// response as each event becomes available.
package stream

// Type identifies the kind of event.
type Type string

const (
	// Text carries a chunk or the whole of the model's natural-language reply.
	Text Type = "text"

	// ToolCall announces a tool invocation before it executes.
	ToolCall Type = "tool_call"

	// ToolResult carries the outcome of executing a tool invocation.
	ToolResult Type = "tool_result"

	// Complete is the terminal success marker; always the last event on a
	// non-error path.
	Complete Type = "complete"

	// Error is the terminal failure marker.
	Error Type = "error"
)

// Event is the wire representation of one line in the NDJSON stream.
// Which fields are populated depends on Type.
type Event struct {
	Type Type `json:"type"`

	// Content holds reply text for Text events and the failure message for
	// Error events.
	Content string `json:"content,omitempty"`

	// ID correlates a ToolResult with its announcing ToolCall.
	ID string `json:"id,omitempty"`

	// Tool is the tool name for ToolCall and ToolResult events.
	Tool string `json:"tool,omitempty"`

	// Args holds the parsed invocation arguments for ToolCall events.
	Args map[string]any `json:"args,omitempty"`

	// Result is the tool output for ToolResult events.
	Result string `json:"result,omitempty"`

	// Source and SourceURL carry the tool's provenance metadata.
	Source    string `json:"source,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
}

// Terminal reports whether the event ends the stream.
func (e Event) Terminal() bool {
	return e.Type == Complete || e.Type == Error
}

// TextEvent creates a text event.
func TextEvent(content string) Event {
	return Event{Type: Text, Content: content}
}

// ToolCallEvent creates a tool_call announcement.
func ToolCallEvent(id, tool string, args map[string]any) Event {
	return Event{Type: ToolCall, ID: id, Tool: tool, Args: args}
}

// ToolResultEvent creates a tool_result event.
func ToolResultEvent(id, tool, result, source, sourceURL string) Event {
	return Event{Type: ToolResult, ID: id, Tool: tool, Result: result, Source: source, SourceURL: sourceURL}
}

// CompleteEvent creates the terminal success marker.
func CompleteEvent() Event {
	return Event{Type: Complete}
}

// ErrorEvent creates the terminal failure marker.
func ErrorEvent(message string) Event {
	return Event{Type: Error, Content: message}
}
