package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmathias/agentloop/stream"
)

type cliOptions struct {
	server   string
	endpoint string
	model    string
	timeout  time.Duration
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "agentcli [message]",
		Short: "Send a message to an agentd server and stream the reply",
		Long: `Send a message to an agentd server and render the NDJSON event
stream as it arrives: tool invocations, tool results, and the final answer.

The stream must end with a terminal event (complete or error); a stream that
ends without one is reported as a transport failure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.server, "server", "s", "http://localhost:8080", "agentd base URL")
	cmd.Flags().StringVarP(&opts.endpoint, "endpoint", "e", "chat", "Endpoint to use (chat or llama)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Model identifier (llama endpoint only)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Request timeout")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show tool arguments and sources")

	return cmd
}

func run(cmd *cobra.Command, opts *cliOptions, message string) error {
	if opts.endpoint != "chat" && opts.endpoint != "llama" {
		return fmt.Errorf("unknown endpoint %q (must be chat or llama)", opts.endpoint)
	}

	body, err := json.Marshal(map[string]string{
		"message": message,
		"model":   opts.model,
	})
	if err != nil {
		return err
	}

	url := strings.TrimRight(opts.server, "/") + "/api/agent/" + opts.endpoint
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: opts.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readServerError(resp)
	}

	return render(cmd, resp.Body, opts.verbose)
}

// readServerError decodes the {"error": ...} body of a non-200 response.
func readServerError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("server error (%d)", resp.StatusCode)
}

// render consumes the event stream and prints it. Returns an error when the
// stream carries an error event or ends without a terminal event.
func render(cmd *cobra.Command, r io.Reader, verbose bool) error {
	out := cmd.OutOrStdout()

	var terminal bool
	var runErr error

	err := stream.NewConsumer(r).Consume(stream.Callbacks{
		OnText: func(ev stream.Event) {
			fmt.Fprintln(out, ev.Content)
		},
		OnToolCall: func(ev stream.Event) {
			if verbose {
				args, _ := json.Marshal(ev.Args)
				fmt.Fprintf(out, "[tool] %s %s\n", ev.Tool, args)
			} else {
				fmt.Fprintf(out, "[tool] %s\n", ev.Tool)
			}
		},
		OnToolResult: func(ev stream.Event) {
			fmt.Fprintf(out, "[result] %s\n", ev.Result)
			if verbose && ev.Source != "" {
				fmt.Fprintf(out, "[source] %s %s\n", ev.Source, ev.SourceURL)
			}
		},
		OnComplete: func(ev stream.Event) {
			terminal = true
		},
		OnError: func(ev stream.Event) {
			terminal = true
			runErr = fmt.Errorf("agent error: %s", ev.Content)
		},
	})
	if err != nil {
		return fmt.Errorf("stream read failed: %w", err)
	}
	if runErr != nil {
		return runErr
	}
	if !terminal {
		return errors.New("stream ended without a terminal event")
	}
	return nil
}
