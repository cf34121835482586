// Package agentloop implements a bounded tool-calling agent loop: the model
// is called with a conversation, its reply is inspected for a tool
// invocation, the tool is executed, the result is fed back, and the cycle
// repeats until the model answers in plain text or the iteration cap is
// reached. Loop progress is streamed to clients as newline-delimited JSON
// events.
//
// The root package holds the core data model shared by the subpackages:
// messages, tools, tool calls and results, chat options, and categorized
// errors.
//
//   - [github.com/cmathias/agentloop/tool]: tool registry and built-in tools
//   - [github.com/cmathias/agentloop/prompt]: textual tool-calling grammar
//   - [github.com/cmathias/agentloop/agent]: the loop controller
//   - [github.com/cmathias/agentloop/stream]: NDJSON event encoder/consumer
//   - [github.com/cmathias/agentloop/provider/anthropic]: structured tool use
//   - [github.com/cmathias/agentloop/provider/openai]: OpenAI-compatible hosts
//
// # Basic Usage
//
//	registry := tool.NewRegistry().Add(tool.NewCalculatorTool())
//	a := agent.New(chatClient, registry, agent.Structured())
//
//	for ev := range a.Run(ctx, "what is 18% of 94.50?") {
//	    fmt.Println(ev.Type)
//	}
package agentloop
