// Package upstream forwards raw JSON-RPC lines to the editor server and
// resolves deferred calls through their event streams.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-bridge/schema"
	"github.com/viant/mcp-bridge/sse"
)

// DefaultTimeout bounds one forwarded call end to end. Tool execution on
// the editor side may take minutes; blocking the bridge on one slow call
// is accepted rather than treated as a fault.
const DefaultTimeout = 300 * time.Second

// Client forwards requests to a resolved endpoint.
type Client struct {
	endpoint schema.Endpoint
	client   *http.Client
	consumer *sse.Consumer
	logger   *logrus.Logger
	timeout  time.Duration
	sink     sse.Sink
}

// New creates a forwarder for the endpoint.
func New(endpoint schema.Endpoint, options ...Option) *Client {
	ret := &Client{
		endpoint: endpoint,
		timeout:  DefaultTimeout,
		logger:   logrus.New(),
		sink:     func(string) {},
	}
	for _, option := range options {
		option(ret)
	}
	if ret.client == nil {
		ret.client = &http.Client{Timeout: ret.timeout}
	}
	if ret.consumer == nil {
		ret.consumer = sse.New(
			sse.WithHTTPClient(ret.client),
			sse.WithLogger(ret.logger),
			sse.WithSink(ret.sink))
	}
	return ret
}

// Forward posts one raw line and returns the reply body together with the
// session id to use on the next call. It never returns an error: transport
// failures come back as synthesized JSON-RPC error bodies with a null id,
// and upstream HTTP error bodies pass through verbatim. A 202 reply is
// resolved through the stream consumer before returning.
func (c *Client) Forward(ctx context.Context, line, sessionID string) (string, string) {
	c.logger.Debugf("upstream: POST %v", c.endpoint.RPCURL())
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.RPCURL(), strings.NewReader(line))
	if err != nil {
		return schema.ErrorBody(nil, jsonrpc.NewInternalError(err.Error(), nil)), sessionID
	}
	request.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		request.Header.Set(schema.SessionHeader, sessionID)
	}
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Errorf("upstream: connection failed: %v", err)
		return schema.ErrorBody(nil, jsonrpc.NewInternalError(fmt.Sprintf("Connection failed: %v", err), nil)), sessionID
	}
	defer response.Body.Close()
	data, err := io.ReadAll(response.Body)
	if err != nil {
		c.logger.Errorf("upstream: reading reply failed: %v", err)
		return schema.ErrorBody(nil, jsonrpc.NewInternalError(err.Error(), nil)), sessionID
	}
	body := string(data)
	if response.StatusCode/100 != 2 {
		// Error bodies are assumed already JSON-RPC shaped; the session id
		// stays at its prior value.
		c.logger.Debugf("upstream: HTTP %v passed through", response.StatusCode)
		return body, sessionID
	}
	if updated := response.Header.Get(schema.SessionHeader); updated != "" {
		if updated != sessionID {
			c.logger.Debugf("upstream: session id updated")
		}
		sessionID = updated
	}
	if response.StatusCode == http.StatusAccepted {
		c.logger.Debugf("upstream: call deferred, following its stream")
		return c.consumer.Consume(ctx, body), sessionID
	}
	return body, sessionID
}
