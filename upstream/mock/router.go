package mock

import (
	"net/http"
	"strings"

	wire "github.com/viant/mcp-bridge/schema"
)

// streamPath prefixes per-task event stream URLs.
const streamPath = "/mcp/sse/"

// ServeHTTP dispatches incoming requests, preferring handler overrides.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == wire.HealthPath:
		if s.HealthHandler != nil {
			s.HealthHandler(w, r)
			return
		}
		s.defaultHealthHandler(w, r)
	case strings.HasPrefix(r.URL.Path, streamPath):
		if s.StreamHandler != nil {
			s.StreamHandler(w, r)
			return
		}
		s.defaultStreamHandler(w, r)
	case r.URL.Path == wire.RPCPath:
		if s.RPCHandler != nil {
			s.RPCHandler(w, r)
			return
		}
		s.defaultRPCHandler(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *Service) defaultHealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
