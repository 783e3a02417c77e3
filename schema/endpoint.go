package schema

import "fmt"

// Wire constants shared by the bridge components. The editor server mounts
// its JSON-RPC endpoint and health probe under a fixed prefix; only the
// event-stream URL varies, supplied per call by deferral descriptors.
const (
	// DefaultHost is the address probed first when no host is configured.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the editor plugin default listen port.
	DefaultPort = 27000

	// ScanPortMin and ScanPortMax bound the inclusive fallback port scan.
	ScanPortMin = 27000
	ScanPortMax = 27010

	// RPCPath accepts JSON-RPC POST requests.
	RPCPath = "/mcp"

	// HealthPath answers liveness probes with status 200.
	HealthPath = "/mcp/health"

	// SessionHeader carries the opaque session token issued by the server.
	SessionHeader = "Mcp-Session-Id"
)

// Endpoint identifies a reachable editor server, resolved once at startup
// and immutable for the process lifetime.
type Endpoint struct {
	Host string
	Port int
}

// BaseURL returns the http root of the endpoint.
func (e Endpoint) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", e.Host, e.Port)
}

// RPCURL returns the JSON-RPC endpoint URL.
func (e Endpoint) RPCURL() string {
	return e.BaseURL() + RPCPath
}

// HealthURL returns the liveness probe URL.
func (e Endpoint) HealthURL() string {
	return e.BaseURL() + HealthPath
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}
