package mock

import (
	"net/http/httptest"
	"net/url"
	"strconv"

	wire "github.com/viant/mcp-bridge/schema"
)

// HTTPTestServer hosts a mock editor server on an ephemeral port.
type HTTPTestServer struct {
	*Service
	Server   *httptest.Server
	Endpoint wire.Endpoint
}

// NewHTTPTestServer starts a mock editor server for tests.
func NewHTTPTestServer() (*HTTPTestServer, error) {
	service := New()
	server := httptest.NewServer(service)
	parsed, err := url.Parse(server.URL)
	if err != nil {
		server.Close()
		return nil, err
	}
	port, err := strconv.Atoi(parsed.Port())
	if err != nil {
		server.Close()
		return nil, err
	}
	return &HTTPTestServer{
		Service:  service,
		Server:   server,
		Endpoint: wire.Endpoint{Host: parsed.Hostname(), Port: port},
	}, nil
}

// Close shuts the server down.
func (s *HTTPTestServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
}
