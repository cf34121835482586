package openai

import "fmt"

// DefaultModel is used when the request does not select a model.
const DefaultModel = "llama3"

// supportedModels is the fixed set of model identifiers clients may select
// on the open-model path. Requests naming anything else are rejected before
// any upstream call.
var supportedModels = map[string]bool{
	"llama3":  true,
	"mistral": true,
	"qwen2.5": true,
	"phi3":    true,
}

// SupportedModels returns the selectable model identifiers.
func SupportedModels() []string {
	names := make([]string, 0, len(supportedModels))
	for name := range supportedModels {
		names = append(names, name)
	}
	return names
}

// ResolveModel validates a requested model identifier, returning the default
// when the request names none.
func ResolveModel(requested string) (string, error) {
	if requested == "" {
		return DefaultModel, nil
	}
	if !supportedModels[requested] {
		return "", fmt.Errorf("unsupported model %q", requested)
	}
	return requested, nil
}
