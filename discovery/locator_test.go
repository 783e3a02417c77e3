package discovery

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcp-bridge/schema"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func healthServer(t *testing.T) (*httptest.Server, int) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != schema.HealthPath {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	return server, serverPort(t, server)
}

func serverPort(t *testing.T, server *httptest.Server) int {
	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)
	return port
}

func deadPort(t *testing.T) int {
	server := httptest.NewServer(http.NotFoundHandler())
	port := serverPort(t, server)
	server.Close()
	return port
}

func TestLocator_Find_configuredEndpoint(t *testing.T) {
	server, port := healthServer(t)
	defer server.Close()
	locator := New(WithLogger(quietLogger()))
	endpoint, err := locator.Find(context.Background(), "127.0.0.1", port)
	require.NoError(t, err)
	assert.EqualValues(t, &schema.Endpoint{Host: "127.0.0.1", Port: port}, endpoint)
}

func TestLocator_Find_localhostPrefersLoopbackIP(t *testing.T) {
	server, port := healthServer(t)
	defer server.Close()
	locator := New(WithLogger(quietLogger()))
	endpoint, err := locator.Find(context.Background(), "localhost", port)
	require.NoError(t, err)
	// The IPv4 loopback is probed before the localhost name.
	assert.EqualValues(t, "127.0.0.1", endpoint.Host)
	assert.EqualValues(t, port, endpoint.Port)
}

func TestLocator_Find_scansFallbackRange(t *testing.T) {
	server, port := healthServer(t)
	defer server.Close()
	configured := deadPort(t)
	locator := New(WithLogger(quietLogger()), WithPortRange(port, port))
	endpoint, err := locator.Find(context.Background(), "127.0.0.1", configured)
	require.NoError(t, err)
	assert.EqualValues(t, port, endpoint.Port)
}

func TestLocator_Find_skipsConfiguredPortInScan(t *testing.T) {
	var probes int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&probes, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	port := serverPort(t, server)
	locator := New(WithLogger(quietLogger()), WithPortRange(port, port))
	_, err := locator.Find(context.Background(), "127.0.0.1", port)
	assert.Error(t, err)
	// One probe for the configured endpoint; the scan does not revisit its port.
	assert.EqualValues(t, 1, atomic.LoadInt32(&probes))
}

func TestLocator_Find_noServer(t *testing.T) {
	port := deadPort(t)
	locator := New(WithLogger(quietLogger()), WithPortRange(port, port), WithProbeTimeout(500*time.Millisecond))
	endpoint, err := locator.Find(context.Background(), "localhost", port)
	assert.Nil(t, endpoint)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no server answered")
}

func TestCandidates(t *testing.T) {
	assert.EqualValues(t, []string{"127.0.0.1", "localhost"}, candidates("localhost"))
	assert.EqualValues(t, []string{"127.0.0.1"}, candidates("127.0.0.1"))
	assert.EqualValues(t, []string{"10.0.0.5"}, candidates("10.0.0.5"))
}
