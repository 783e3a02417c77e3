package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/mcp-bridge/schema"
)

// DefaultTimeout bounds one stream read end to end; deferred tool calls on
// the editor side may stream for minutes.
const DefaultTimeout = 300 * time.Second

const (
	readChunkSize  = 1024
	blockDelimiter = "\n\n"
)

// Sink receives progress payloads to emit as standalone output lines.
type Sink func(data string)

// Consumer resolves deferred calls by following their event stream.
type Consumer struct {
	client *http.Client
	logger *logrus.Logger
	sink   Sink
}

// Option customizes a Consumer.
type Option func(*Consumer)

// WithHTTPClient replaces the streaming client, including its timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Consumer) {
		c.client = client
	}
}

// WithLogger replaces the diagnostic logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Consumer) {
		c.logger = logger
	}
}

// WithSink routes progress pushes produced while a stream is open.
func WithSink(sink Sink) Option {
	return func(c *Consumer) {
		c.sink = sink
	}
}

// New creates a stream consumer.
func New(options ...Option) *Consumer {
	ret := &Consumer{
		client: &http.Client{Timeout: DefaultTimeout},
		logger: logrus.New(),
		sink:   func(string) {},
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Consume resolves the body of a 202 reply. It returns the terminal event
// data once the stream yields one; on a descriptor that is not an accepted
// deferral it returns the body unchanged, and on any stream failure it
// falls back to the body as well. The caller never sees an error: a broken
// or prematurely closed stream is an accepted degenerate outcome.
func (c *Consumer) Consume(ctx context.Context, body string) string {
	deferral := &schema.Deferral{}
	if err := json.Unmarshal([]byte(body), deferral); err != nil {
		c.logger.Errorf("sse: malformed deferral descriptor: %v", err)
		return body
	}
	if !deferral.Accepted() {
		return body
	}
	if deferral.SSEURL == "" {
		c.logger.Errorf("sse: deferral descriptor has no sseUrl")
		return body
	}
	c.logger.Debugf("sse: following %v (task %v)", deferral.SSEURL, deferral.TaskID)
	final, err := c.follow(ctx, deferral.SSEURL)
	if err != nil {
		c.logger.Errorf("sse: stream failed, falling back to deferral body: %v", err)
		return body
	}
	return final
}

// follow reads the stream incrementally, draining complete event blocks as
// they arrive rather than waiting for the connection to close.
func (c *Consumer) follow(ctx context.Context, streamURL string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return "", err
	}
	request.Header.Set("Accept", "text/event-stream")
	response, err := c.client.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()
	if response.StatusCode/100 != 2 {
		return "", fmt.Errorf("unexpected stream status %v", response.StatusCode)
	}
	var buffer []byte
	chunk := make([]byte, readChunkSize)
	for {
		n, readErr := response.Body.Read(chunk)
		if n > 0 {
			buffer = append(buffer, chunk[:n]...)
			for {
				index := bytes.Index(buffer, []byte(blockDelimiter))
				if index < 0 {
					break
				}
				event := Parse(string(buffer[:index]))
				buffer = buffer[index+len(blockDelimiter):]
				switch {
				case event.Terminal() && event.Data != "":
					// Remaining buffered bytes are dropped.
					return event.Data, nil
				case event.Progress() && event.Data != "":
					c.sink(event.Data)
				}
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return "", errors.New("stream closed without a terminal event")
			}
			return "", readErr
		}
	}
}
