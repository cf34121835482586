package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ContentType is the MIME type of the NDJSON event stream.
const ContentType = "application/x-ndjson"

// Encoder writes events to an output as newline-delimited JSON, one event
// per line, flushing after every event so clients see progress immediately
// instead of a buffered response.
type Encoder struct {
	w       io.Writer
	flusher http.Flusher
}

// NewEncoder creates an encoder writing to w. If w implements http.Flusher
// (as http.ResponseWriter does for chunked responses), every event is
// flushed as it is written.
func NewEncoder(w io.Writer) *Encoder {
	e := &Encoder{w: w}
	if f, ok := w.(http.Flusher); ok {
		e.flusher = f
	}
	return e
}

// Write serializes one event as a JSON line. A failed write means the peer
// is gone; callers should stop producing events.
func (e *Encoder) Write(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("stream: encode event: %w", err)
	}
	data = append(data, '\n')

	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("stream: write event: %w", err)
	}
	if e.flusher != nil {
		e.flusher.Flush()
	}
	return nil
}
