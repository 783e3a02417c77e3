package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-bridge/discovery"
	"github.com/viant/mcp-bridge/engine"
	"github.com/viant/mcp-bridge/schema"
	"github.com/viant/mcp-bridge/upstream"
)

// Service owns the bridge state: the endpoint resolved at startup and the
// current session id. Both are mutated only by the serve loop; the bridge
// runs single threaded with exactly one request in flight.
type Service struct {
	options  *Options
	endpoint schema.Endpoint
	session  string
	client   *upstream.Client
	locator  *discovery.Locator
	logger   *logrus.Logger
	input    io.Reader
	output   io.Writer
}

// Option customizes a Service.
type Option func(*Service)

// WithInput replaces the input stream, stdin by default.
func WithInput(input io.Reader) Option {
	return func(s *Service) {
		s.input = input
	}
}

// WithOutput replaces the output stream, stdout by default.
func WithOutput(output io.Writer) Option {
	return func(s *Service) {
		s.output = output
	}
}

// WithLocator replaces the endpoint locator.
func WithLocator(locator *discovery.Locator) Option {
	return func(s *Service) {
		s.locator = locator
	}
}

// New resolves the editor server endpoint and returns a ready service.
// Discovery failure is fatal: the caller is expected to exit nonzero
// without entering the serve loop.
func New(ctx context.Context, options *Options, opts ...Option) (*Service, error) {
	if options == nil {
		options = &Options{}
	}
	options.Init()
	ret := &Service{
		options: options,
		logger:  newLogger(options.Debug),
		input:   os.Stdin,
		output:  os.Stdout,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.locator == nil {
		ret.locator = discovery.New(discovery.WithLogger(ret.logger))
	}
	endpoint, err := ret.locator.Find(ctx, options.Host, options.Port)
	if err != nil {
		return nil, fmt.Errorf("%w; %v", err, startupHint(ctx))
	}
	ret.endpoint = *endpoint
	ret.logger.Debugf("bridge: using server at %v", ret.endpoint)
	ret.client = upstream.New(ret.endpoint,
		upstream.WithLogger(ret.logger),
		upstream.WithProgressSink(ret.push))
	return ret, nil
}

// Serve runs the main loop until end of input or interrupt. Each line is
// fully resolved, including any nested stream read, before the next one is
// read, so output lines correspond to input lines in order. Per-line
// failures answer the line and never abort the loop.
func (s *Service) Serve(ctx context.Context) error {
	reader := bufio.NewReader(s.input)
	for {
		select {
		case <-ctx.Done():
			s.logger.Debugf("bridge: interrupted, shutting down")
			return nil
		default:
		}
		line, err := reader.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			s.handleLine(ctx, trimmed)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("bridge: input closed, shutting down")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
}

// Endpoint returns the endpoint resolved at startup.
func (s *Service) Endpoint() schema.Endpoint {
	return s.endpoint
}

func (s *Service) handleLine(ctx context.Context, line string) {
	s.logger.Debugf("bridge: received: %v", line)
	id, rpcError := requestID(line)
	if rpcError != nil {
		s.logger.Errorf("bridge: rejecting input line: %v", rpcError.Message)
		s.emit(schema.ErrorBody(nil, rpcError))
		return
	}
	body, session := s.client.Forward(ctx, line, s.session)
	s.session = session
	if ctx.Err() != nil {
		// Interrupted mid-call; the transport error is an artifact of
		// shutdown, not an answer worth emitting.
		return
	}
	if body == "" {
		return
	}
	if id != nil {
		body = restoreID(body, id)
	}
	s.emit(body)
}

// requestID validates the line as a JSON-RPC object and lifts its id.
// Numbers decode as json.Number so ids survive re-encoding untouched.
func requestID(line string) (interface{}, *jsonrpc.Error) {
	decoder := json.NewDecoder(strings.NewReader(line))
	decoder.UseNumber()
	var request map[string]interface{}
	if err := decoder.Decode(&request); err != nil {
		var syntax *json.SyntaxError
		if errors.As(err, &syntax) {
			return nil, jsonrpc.NewParsingError(fmt.Sprintf("Parse error: %v", err), nil)
		}
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	if decoder.More() {
		return nil, jsonrpc.NewParsingError("Parse error: trailing content after message", nil)
	}
	if request == nil {
		return nil, jsonrpc.NewInternalError("request is not an object", nil)
	}
	return request["id"], nil
}

// restoreID injects the original request id when the reply lacks one or
// carries a null one. Values decode as raw messages so everything below
// the top level survives byte for byte. Failures are silently tolerated
// and leave the body untouched: a non-conformant upstream is passed
// through rather than corrected.
func restoreID(body string, id interface{}) string {
	var response map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &response); err != nil || response == nil {
		return body
	}
	if value, ok := response["id"]; ok && !bytes.Equal(value, []byte("null")) {
		return body
	}
	encoded, err := json.Marshal(id)
	if err != nil {
		return body
	}
	response["id"] = encoded
	data, err := json.Marshal(response)
	if err != nil {
		return body
	}
	return string(data)
}

// emit writes one output line. JSON bodies are canonicalized to a minified
// single line first, since the output transport is strictly line oriented
// and the upstream may reply pretty-printed. Compaction preserves key
// order, so an already compact body passes through byte for byte.
func (s *Service) emit(body string) {
	compact, err := canonicalize(body)
	if err != nil {
		s.logger.Errorf("bridge: reply is not JSON, emitting flattened: %v", err)
		_, _ = fmt.Fprintln(s.output, flatten(body))
		return
	}
	s.logger.Debugf("bridge: sending: %v", compact)
	_, _ = fmt.Fprintln(s.output, compact)
}

// push emits one progress payload the moment it arrives off a stream.
func (s *Service) push(data string) {
	_, _ = fmt.Fprintln(s.output, data)
}

func canonicalize(body string) (string, error) {
	var buffer bytes.Buffer
	if err := json.Compact(&buffer, []byte(body)); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

// flatten strips line breaks as the last-resort framing for a body that is
// not valid JSON.
func flatten(body string) string {
	body = strings.ReplaceAll(body, "\n", " ")
	return strings.ReplaceAll(body, "\r", "")
}

// startupHint qualifies a fatal discovery diagnostic: a detected engine
// install with no reachable server usually means the editor is not running
// or the MCP plugin is disabled.
func startupHint(ctx context.Context) string {
	installs := engine.New().Installs(ctx)
	if len(installs) == 0 {
		return "no engine installation detected; start the editor with the MCP server plugin enabled"
	}
	newest := installs[0]
	return fmt.Sprintf("engine %v detected at %v; is the editor running with the MCP server plugin enabled?", newest.Version, newest.Root)
}

func newLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
