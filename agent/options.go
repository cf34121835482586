package agent

import (
	ai "github.com/cmathias/agentloop"
)

// Options contains configuration for one agent run.
type Options struct {
	// MaxSteps is the hard iteration cap. The loop terminates
	// unconditionally after this many iterations even if the model keeps
	// requesting tools. Defaults to the convention's DefaultMaxSteps.
	MaxSteps int

	// ChatOptions are passed through to the chat client on every call.
	ChatOptions []ai.Option
}

// Option is a functional option for configuring an agent run.
type Option func(*Options)

// WithMaxSteps overrides the iteration cap for this run.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxSteps = n
		}
	}
}

// WithChatOptions passes options through to the chat client.
func WithChatOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// WithModel is a convenience option to set the model for chat calls.
func WithModel(model string) Option {
	return WithChatOptions(ai.WithModel(model))
}

// WithMaxTokens is a convenience option to set max tokens for chat calls.
func WithMaxTokens(n int) Option {
	return WithChatOptions(ai.WithMaxTokens(n))
}

// WithTemperature is a convenience option to set temperature for chat calls.
func WithTemperature(t float64) Option {
	return WithChatOptions(ai.WithTemperature(t))
}

func applyOptions(conv Convention, opts ...Option) *Options {
	o := &Options{
		MaxSteps: conv.DefaultMaxSteps(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
