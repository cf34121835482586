package main

import (
	"github.com/cmathias/agentloop/tool"
)

// SetupTools registers the built-in tools: weather lookup, web search, the
// arithmetic calculator, and the server clock.
func SetupTools() *tool.Registry {
	return tool.NewRegistry().Add(tool.Builtins()...)
}
