// Command mcp exposes the built-in tool registry as an MCP server over
// stdin/stdout, so MCP-capable clients can call the same tools the agent
// loop uses.
package main

import (
	"log/slog"
	"os"

	"github.com/cmathias/agentloop/mcp"
	"github.com/cmathias/agentloop/tool"
)

func main() {
	registry := tool.NewRegistry().Add(tool.Builtins()...)

	if err := mcp.ServeStdio(registry); err != nil {
		slog.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
