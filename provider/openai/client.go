// Package openai adapts the OpenAI SDK to the [chat.Client] interface.
//
// With a custom base URL it talks to any OpenAI-compatible inference host
// (local llama servers, hosted open-model routers), which is the
// textual-convention path: those models receive tool documentation in the
// system instruction rather than native schemas. Native tools still work
// when the host supports them.
package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	ai "github.com/cmathias/agentloop"
)

// Client wraps the OpenAI SDK to implement chat.Client.
type Client struct {
	client *openai.Client
	model  string
}

// New creates a client for the OpenAI API or any compatible host.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		model: DefaultModel,
	}

	requestOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	var cfg clientConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.model != "" {
		c.model = cfg.model
	}

	client := openai.NewClient(requestOpts...)
	c.client = &client
	return c
}

type clientConfig struct {
	baseURL string
	model   string
}

// ClientOption configures the client.
type ClientOption func(*clientConfig)

// WithBaseURL points the client at an OpenAI-compatible host,
// e.g. "http://localhost:11434/v1" for a local llama server.
func WithBaseURL(u string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = u
	}
}

// WithModel sets the default model for requests.
func WithModel(model string) ClientOption {
	return func(c *clientConfig) {
		c.model = model
	}
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)

	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: convertMessages(messages, options.System),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(*options.Temperature)
	}
	if len(options.Tools) > 0 {
		params.Tools = convertTools(options.Tools)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, ai.NewPermanentError("model returned no choices", 0, nil)
	}

	choice := resp.Choices[0]
	return &ai.Response{
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
		ToolCalls: extractToolCalls(choice.Message),
	}, nil
}
