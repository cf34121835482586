package stream

import (
	"encoding/json"
	"io"
	"strings"
)

// Callbacks dispatches decoded events by type. Nil callbacks are skipped.
type Callbacks struct {
	OnText       func(Event)
	OnToolCall   func(Event)
	OnToolResult func(Event)
	OnComplete   func(Event)
	OnError      func(Event)
}

func (c Callbacks) dispatch(ev Event) {
	switch ev.Type {
	case Text:
		if c.OnText != nil {
			c.OnText(ev)
		}
	case ToolCall:
		if c.OnToolCall != nil {
			c.OnToolCall(ev)
		}
	case ToolResult:
		if c.OnToolResult != nil {
			c.OnToolResult(ev)
		}
	case Complete:
		if c.OnComplete != nil {
			c.OnComplete(ev)
		}
	case Error:
		if c.OnError != nil {
			c.OnError(ev)
		}
	}
}

// Consumer reads an NDJSON event stream incrementally. A single network
// chunk may carry a partial line or several lines, so the consumer buffers
// any trailing incomplete line and prepends it to the next chunk before
// re-splitting. Lines that fail to parse as JSON are skipped; they never
// abort consumption of subsequent lines.
type Consumer struct {
	r   io.Reader
	buf []byte
	// pending holds the trailing incomplete line from the previous chunk.
	pending string
}

// NewConsumer creates a consumer reading from r.
func NewConsumer(r io.Reader) *Consumer {
	return &Consumer{
		r:   r,
		buf: make([]byte, 4096),
	}
}

// Each reads the stream to completion, invoking fn for every decoded event
// in order. It returns the transport error that ended the stream, or nil at
// a clean EOF. Ending without a Complete event is not an error at this
// layer; callers decide how to treat truncated streams.
func (c *Consumer) Each(fn func(Event)) error {
	for {
		n, err := c.r.Read(c.buf)
		if n > 0 {
			c.pending += string(c.buf[:n])
			c.drain(fn)
		}
		if err == io.EOF {
			c.flushTail(fn)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Consume is like Each but dispatches through per-type callbacks.
func (c *Consumer) Consume(cb Callbacks) error {
	return c.Each(cb.dispatch)
}

// drain emits every complete line currently buffered, keeping the tail.
func (c *Consumer) drain(fn func(Event)) {
	for {
		idx := strings.IndexByte(c.pending, '\n')
		if idx < 0 {
			return
		}
		line := c.pending[:idx]
		c.pending = c.pending[idx+1:]
		emitLine(line, fn)
	}
}

// flushTail handles a final line that arrived without a trailing newline.
func (c *Consumer) flushTail(fn func(Event)) {
	if c.pending == "" {
		return
	}
	emitLine(c.pending, fn)
	c.pending = ""
}

func emitLine(line string, fn func(Event)) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	var ev Event
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		// Malformed line: skip it and keep reading.
		return
	}
	fn(ev)
}
