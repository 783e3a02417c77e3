package upstream

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/mcp-bridge/sse"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the forward timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the transport, including its timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithLogger replaces the diagnostic logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithProgressSink routes progress pushes produced by deferred calls.
func WithProgressSink(sink sse.Sink) Option {
	return func(c *Client) {
		c.sink = sink
	}
}
