// Package prompt implements the textual tool-calling convention: a system
// instruction that teaches the model to request a tool with a single
// `<tool>name|key=value</tool>` line, and a parser that extracts such
// requests from the model's free-text output.
//
// Providers with native structured tool calling do not need this package;
// the agent's structured convention passes machine-readable schemas instead.
package prompt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	ai "github.com/cmathias/agentloop"
)

// BuildSystem produces the system instruction documenting the available
// tools and the exact invocation syntax for the textual convention.
func BuildSystem(tools []ai.Tool) string {
	var b strings.Builder

	b.WriteString("You are a helpful assistant with access to the following tools:\n\n")

	for _, t := range tools {
		b.WriteString(fmt.Sprintf("- %s: %s\n", t.Name, t.Description))
		if params := describeParameters(t.Parameters); params != "" {
			b.WriteString(fmt.Sprintf("  Parameters: %s\n", params))
		}
	}

	b.WriteString("\nTo use a tool, respond with a single line of the form:\n")
	b.WriteString("<tool>tool_name|key=value|key2=value2</tool>\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Use at most one tool per turn.\n")
	b.WriteString("- Emit the tool line by itself, with no other text.\n")
	b.WriteString("- After receiving a tool result, answer the user in plain text.\n")
	b.WriteString("- If no tool is needed, just answer in plain text.\n")

	return b.String()
}

// describeParameters renders a JSON Schema's properties as a compact usage
// line, required parameters first, each with its description and default.
func describeParameters(schema json.RawMessage) string {
	if len(schema) == 0 {
		return ""
	}

	var parsed struct {
		Properties map[string]struct {
			Description string `json:"description"`
			Default     string `json:"default"`
		} `json:"properties"`
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(schema, &parsed); err != nil || len(parsed.Properties) == 0 {
		return ""
	}

	required := make(map[string]bool, len(parsed.Required))
	for _, name := range parsed.Required {
		required[name] = true
	}

	names := make([]string, 0, len(parsed.Properties))
	for name := range parsed.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for _, name := range names {
		prop := parsed.Properties[name]
		part := name
		if !required[name] {
			part += " (optional"
			if prop.Default != "" {
				part += ", default " + prop.Default
			}
			part += ")"
		}
		if prop.Description != "" {
			part += " - " + prop.Description
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}
