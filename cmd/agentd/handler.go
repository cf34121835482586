package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cmathias/agentloop/agent"
	"github.com/cmathias/agentloop/chat"
	"github.com/cmathias/agentloop/stream"
	"github.com/cmathias/agentloop/tool"
)

// chatRequest is the request body for both agent endpoints.
type chatRequest struct {
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
}

// toolInfo is one entry in the capability listing returned on GET.
type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source,omitempty"`
}

// AgentHandler serves one agent endpoint: POST runs the loop and streams
// NDJSON events, GET returns a static capability listing.
type AgentHandler struct {
	name        string
	description string
	client      chat.Client
	credential  string // env var name reported when client is nil
	registry    *tool.Registry
	convention  agent.Convention
	config      *Config

	// resolveModel validates the request's model selection. Nil when the
	// endpoint does not accept a model parameter.
	resolveModel func(requested string) (string, error)
}

// ServeHTTP dispatches GET to the capability listing and POST to the agent run.
func (h *AgentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.serveInfo(w)
	case http.MethodPost:
		h.serveRun(w, r)
	default:
		slog.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// serveInfo returns the static endpoint description and the tools it exposes.
func (h *AgentHandler) serveInfo(w http.ResponseWriter) {
	tools := h.registry.Tools()
	infos := make([]toolInfo, len(tools))
	for i, t := range tools {
		infos[i] = toolInfo{
			Name:        t.Name,
			Description: t.Description,
			Source:      t.Source,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"description": h.description,
		"tools":       infos,
	})
}

// serveRun validates the request, runs the agent loop, and streams its events
// as NDJSON. Events are written as they are produced; once streaming has
// begun, failures travel in-band as error events.
func (h *AgentHandler) serveRun(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("invalid request body", "endpoint", h.name, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message required"})
		return
	}

	if h.client == nil {
		slog.Error("provider credential missing", "endpoint", h.name, "credential", h.credential)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": h.credential + " not configured"})
		return
	}

	opts := []agent.Option{}
	if h.config.MaxSteps > 0 {
		opts = append(opts, agent.WithMaxSteps(h.config.MaxSteps))
	}
	if h.resolveModel != nil {
		model, err := h.resolveModel(req.Model)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		opts = append(opts, agent.WithModel(model))
	}

	log := slog.With("endpoint", h.name, "convention", h.convention.Name())
	log.Info("request started", "message_len", len(req.Message))

	w.Header().Set("Content-Type", stream.ContentType)
	w.Header().Set("Cache-Control", "no-cache")

	ctx := r.Context()
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	a := agent.New(h.client, h.registry, h.convention)
	events := a.Run(ctx, req.Message, opts...)

	enc := stream.NewEncoder(w)
	var eventCount int
	var last stream.Event
	for ev := range events {
		eventCount++
		last = ev
		if err := enc.Write(ev); err != nil {
			// Peer is gone; stop consuming so the loop observes cancellation.
			log.Warn("client disconnected", "error", err, "events_sent", eventCount)
			return
		}
	}

	log.Info("request completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"events_sent", eventCount,
		"final_event", string(last.Type),
	)
}

// newChatHandler builds the structured-convention endpoint.
func newChatHandler(client chat.Client, registry *tool.Registry, cfg *Config) *AgentHandler {
	return &AgentHandler{
		name:        "chat",
		description: "Tool-calling agent backed by Claude with native tool use.",
		client:      client,
		credential:  "ANTHROPIC_API_KEY",
		registry:    registry,
		convention:  agent.Structured(),
		config:      cfg,
	}
}

// newLlamaHandler builds the textual-convention endpoint for open models.
func newLlamaHandler(client chat.Client, registry *tool.Registry, cfg *Config, resolve func(string) (string, error)) *AgentHandler {
	return &AgentHandler{
		name:         "llama",
		description:  "Tool-calling agent for open models using prompt-based tool markup.",
		client:       client,
		credential:   "OPENMODEL_API_KEY",
		registry:     registry,
		convention:   agent.Textual(),
		config:       cfg,
		resolveModel: resolve,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// corsMiddleware adds CORS headers for cross-origin frontend requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
