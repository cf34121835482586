// Command agentd serves the tool-calling agent over HTTP, streaming progress
// as newline-delimited JSON events.
//
// Endpoints:
//
//	POST /api/agent/chat   - structured convention (Claude, native tool use)
//	POST /api/agent/llama  - textual convention (open models, prompt markup)
//	GET  /api/agent/chat   - capability listing
//	GET  /api/agent/llama  - capability listing
//	GET  /health           - health check
//
// Configuration is via environment variables (a .env file is loaded if
// present):
//
//	PORT               - server port (default: 8080)
//	LOG_LEVEL          - debug, info, warn, error (default: info)
//	ANTHROPIC_API_KEY  - credential for the chat endpoint
//	OPENMODEL_API_KEY  - credential for the llama endpoint
//	OPENMODEL_BASE_URL - OpenAI-compatible host for the llama endpoint
//	AGENT_MAX_STEPS    - iteration cap override (default: convention default)
//	AGENT_TIMEOUT      - per-request timeout (default: 2m)
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmathias/agentloop/chat"
	"github.com/cmathias/agentloop/provider/anthropic"
	"github.com/cmathias/agentloop/provider/openai"
)

func main() {
	cfg := LoadConfig()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	registry := SetupTools()
	slog.Info("registered tools", "count", registry.Len(), "names", registry.Names())

	// Clients are created only when their credential is present; the handler
	// reports the missing credential per request otherwise.
	var chatClient chat.Client
	if cfg.AnthropicKey != "" {
		chatClient = anthropic.New(cfg.AnthropicKey)
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set, chat endpoint disabled")
	}

	var llamaClient chat.Client
	if cfg.OpenModelKey != "" {
		opts := []openai.ClientOption{}
		if cfg.OpenModelBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenModelBaseURL))
		}
		llamaClient = openai.New(cfg.OpenModelKey, opts...)
	} else {
		slog.Warn("OPENMODEL_API_KEY not set, llama endpoint disabled")
	}

	mux := http.NewServeMux()
	mux.Handle("/api/agent/chat", corsMiddleware(newChatHandler(chatClient, registry, cfg)))
	mux.Handle("/api/agent/llama", corsMiddleware(newLlamaHandler(llamaClient, registry, cfg, openai.ResolveModel)))
	mux.HandleFunc("/health", healthHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // streaming responses need no write timeout
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("agentd starting", "port", cfg.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
