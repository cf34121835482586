package anthropic

import (
	"encoding/json"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/cmathias/agentloop"
)

func convertTools(tools []ai.Tool) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}
	result := make([]anthropic.ToolUnionParam, len(tools))
	for i, t := range tools {
		var schema map[string]interface{}
		if len(t.Parameters) > 0 {
			json.Unmarshal(t.Parameters, &schema)
		}

		var required []string
		if reqVal, ok := schema["required"].([]interface{}); ok {
			for _, r := range reqVal {
				if s, ok := r.(string); ok {
					required = append(required, s)
				}
			}
		}

		result[i] = anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name,
				Description: anthropic.String(t.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: schema["properties"],
					Required:   required,
				},
			},
		}
	}
	return result
}

// wrapError categorizes Anthropic SDK errors by status code.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		// Network-level failure, no HTTP status to categorize.
		return ai.NewTransientError("anthropic request failed", 0, err)
	}

	code := apiErr.StatusCode
	switch {
	case code == 429 || code >= 500:
		return ai.NewTransientError(err.Error(), code, err)
	case code == 401 || code == 403:
		return ai.NewPermanentError(err.Error(), code, err)
	case code == 400 || code == 404 || code == 422:
		return ai.NewUserInputError(err.Error(), code, err)
	default:
		return ai.NewPermanentError(err.Error(), code, err)
	}
}
