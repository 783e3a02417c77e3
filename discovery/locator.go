// Package discovery locates a reachable editor server by probing its
// health endpoint across a small, well-known port range.
package discovery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/mcp-bridge/schema"
)

// DefaultProbeTimeout bounds one liveness probe so a full scan of the
// fallback range stays within a few seconds of startup latency.
const DefaultProbeTimeout = 2 * time.Second

// Locator finds a reachable editor server endpoint.
type Locator struct {
	client  *http.Client
	logger  *logrus.Logger
	minPort int
	maxPort int
}

// Option customizes a Locator.
type Option func(*Locator)

// WithProbeTimeout overrides the per-probe timeout.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(l *Locator) {
		l.client.Timeout = timeout
	}
}

// WithPortRange overrides the inclusive fallback scan range.
func WithPortRange(min, max int) Option {
	return func(l *Locator) {
		l.minPort, l.maxPort = min, max
	}
}

// WithLogger replaces the diagnostic logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}

// New creates a locator.
func New(options ...Option) *Locator {
	ret := &Locator{
		client:  &http.Client{Timeout: DefaultProbeTimeout},
		logger:  logrus.New(),
		minPort: schema.ScanPortMin,
		maxPort: schema.ScanPortMax,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Find returns the first endpoint whose health probe succeeds, trying the
// configured pair before scanning the fallback port range in host-major,
// port-minor order. Probes never raise; an endpoint that fails, times out
// or answers non-200 simply counts as absent. Find runs once at startup,
// there is no re-probing afterwards.
func (l *Locator) Find(ctx context.Context, host string, port int) (*schema.Endpoint, error) {
	hosts := candidates(host)
	for _, name := range hosts {
		endpoint := schema.Endpoint{Host: name, Port: port}
		if l.isAlive(ctx, endpoint) {
			l.logger.Debugf("discovery: found server at %v", endpoint)
			return &endpoint, nil
		}
	}
	for _, name := range hosts {
		for scan := l.minPort; scan <= l.maxPort; scan++ {
			if scan == port {
				continue
			}
			endpoint := schema.Endpoint{Host: name, Port: scan}
			if l.isAlive(ctx, endpoint) {
				l.logger.Debugf("discovery: found server at %v", endpoint)
				return &endpoint, nil
			}
		}
	}
	return nil, fmt.Errorf("no server answered on %v, ports %d-%d", hosts, l.minPort, l.maxPort)
}

// candidates orders the probe hosts; the literal localhost name gets the
// IPv4 loopback tried first to avoid slow or ambiguous name resolution.
func candidates(host string) []string {
	if host == "localhost" {
		return []string{"127.0.0.1", "localhost"}
	}
	return []string{host}
}

func (l *Locator) isAlive(ctx context.Context, endpoint schema.Endpoint) bool {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.HealthURL(), nil)
	if err != nil {
		return false
	}
	response, err := l.client.Do(request)
	if err != nil {
		l.logger.Debugf("discovery: %v unreachable: %v", endpoint, err)
		return false
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)
	return response.StatusCode == http.StatusOK
}
