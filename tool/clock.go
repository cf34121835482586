package tool

import (
	"context"
	"fmt"
	"time"

	ai "github.com/cmathias/agentloop"
)

// ClockToolOption configures the clock tool.
type ClockToolOption func(*clockToolConfig)

type clockToolConfig struct {
	now func() time.Time
}

// WithNow overrides the time source (used in tests).
func WithNow(now func() time.Time) ClockToolOption {
	return func(cfg *clockToolConfig) {
		cfg.now = now
	}
}

// clockArgs is empty; the tool takes no arguments.
type clockArgs struct{}

// NewClockTool creates the get_time tool, which formats the server clock.
func NewClockTool(opts ...ClockToolOption) Registration {
	cfg := &clockToolConfig{now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}

	return Registration{
		Tool: ai.Tool{
			Name:        "get_time",
			Description: "Get current date and time. No args required.",
			Parameters:  ai.MustSchemaFor[clockArgs](),
			Source:      "Server System Clock",
		},
		Handler: func(ctx context.Context, call ai.ToolCall) (string, error) {
			now := cfg.now()
			return fmt.Sprintf("**%s** at **%s**",
				now.Format("Monday, January 2, 2006"),
				now.Format("3:04 PM")), nil
		},
	}
}

// Builtins returns all four built-in tools, ready to Add to a registry.
func Builtins() []Registration {
	return []Registration{
		NewWeatherTool(),
		NewWebSearchTool(),
		NewCalculatorTool(),
		NewClockTool(),
	}
}
