package prompt

import (
	"regexp"
	"strings"
)

// toolSpan matches a complete <tool>...</tool> span. (?s) lets the inner
// content cross line breaks in case the model wraps the invocation.
var toolSpan = regexp.MustCompile(`(?s)<tool>(.*?)</tool>`)

// Invocation is a tool request parsed from the model's free-text output.
type Invocation struct {
	Name string
	Args map[string]string
}

// ParseInvocation extracts the first well-formed tool invocation from model
// output. The inner content is split on "|": the first segment is the tool
// name, subsequent segments are key=value pairs. A value may itself contain
// "=", so only the first "=" in each pair delimits the key.
//
// known filters out spans naming unregistered tools: such a span yields no
// invocation and the output falls through to plain-text handling.
func ParseInvocation(output string, known func(name string) bool) (*Invocation, bool) {
	match := toolSpan.FindStringSubmatch(output)
	if match == nil {
		return nil, false
	}

	segments := strings.Split(match[1], "|")
	name := strings.TrimSpace(segments[0])
	if name == "" || (known != nil && !known(name)) {
		return nil, false
	}

	args := make(map[string]string)
	for _, segment := range segments[1:] {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		key, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		args[key] = strings.TrimSpace(value)
	}

	return &Invocation{Name: name, Args: args}, true
}

// StripMarkup removes any residual <tool>...</tool> spans from final text so
// already-handled invocations never leak into the user-visible reply.
func StripMarkup(text string) string {
	stripped := toolSpan.ReplaceAllString(text, "")
	// Drop stray unmatched tags left by a truncated or malformed span.
	stripped = strings.ReplaceAll(stripped, "<tool>", "")
	stripped = strings.ReplaceAll(stripped, "</tool>", "")
	return strings.TrimSpace(stripped)
}
