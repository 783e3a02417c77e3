package mock

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner/local"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-bridge/internal/collection"
	"github.com/viant/mcp-protocol/schema"
)

// Service is a mock editor server with endpoint handlers.
type Service struct {
	// HealthHandler, RPCHandler and StreamHandler replace the default
	// endpoint behavior when set.
	HealthHandler http.HandlerFunc
	RPCHandler    http.HandlerFunc
	StreamHandler http.HandlerFunc

	// ProgressPayloads are streamed, in order, ahead of the terminal
	// response of every deferred call; nil selects two default progress
	// notifications.
	ProgressPayloads []string

	shell    *gosh.Service
	tasks    *collection.SyncMap[string, *deferredCall]
	mux      sync.Mutex
	calls    []Call
	sessions []string
}

// Call records one RPC request as received.
type Call struct {
	Method    string
	SessionID string
}

// deferredCall parks a tool call until its stream is consumed.
type deferredCall struct {
	taskID string
	id     interface{}
	params *schema.CallToolRequestParams
}

// New creates a mock editor server.
func New() *Service {
	ret := &Service{
		tasks: collection.NewSyncMap[string, *deferredCall](),
	}
	if shell, err := gosh.New(context.Background(), local.New()); err == nil {
		ret.shell = shell
	}
	return ret
}

// envelope shapes the JSON-RPC messages the mock emits. Field order
// matters to byte-level passthrough assertions, so it is a struct rather
// than a map.
type envelope struct {
	Jsonrpc string          `json:"jsonrpc"`
	Id      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpc.Error  `json:"error,omitempty"`
}

// notification shapes server-initiated pushes such as progress updates.
type notification struct {
	Jsonrpc string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

func (s *Service) recordCall(method, sessionID string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.calls = append(s.calls, Call{Method: method, SessionID: sessionID})
}

// Calls returns a copy of the RPC requests seen so far.
func (s *Service) Calls() []Call {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Service) recordSession(sessionID string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.sessions = append(s.sessions, sessionID)
}

// Sessions returns the session ids issued to initialize calls so far.
func (s *Service) Sessions() []string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]string(nil), s.sessions...)
}

// PendingTasks returns the number of deferred calls with unconsumed
// streams.
func (s *Service) PendingTasks() int {
	return s.tasks.Len()
}
