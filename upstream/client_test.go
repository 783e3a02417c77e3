package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-bridge/schema"
	"github.com/viant/mcp-bridge/upstream/mock"
	protocol "github.com/viant/mcp-protocol/schema"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type reply struct {
	Jsonrpc string          `json:"jsonrpc"`
	Id      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *jsonrpc.Error  `json:"error"`
}

func decodeReply(t *testing.T, body string) *reply {
	ret := &reply{}
	require.NoError(t, json.Unmarshal([]byte(body), ret), body)
	return ret
}

func TestClient_Forward_initialize(t *testing.T) {
	srv, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	defer srv.Close()

	client := New(srv.Endpoint, WithLogger(quietLogger()))
	body, session := client.Forward(context.Background(), `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`, "")

	require.NotEmpty(t, session)
	assert.EqualValues(t, []string{session}, srv.Sessions())
	decoded := decodeReply(t, body)
	assert.EqualValues(t, "2.0", decoded.Jsonrpc)
	assert.EqualValues(t, 1, decoded.Id)
	result := &protocol.InitializeResult{}
	require.NoError(t, json.Unmarshal(decoded.Result, result))
	assert.NotEmpty(t, result.ProtocolVersion)
	assert.EqualValues(t, "mock-editor", result.ServerInfo.Name)
}

func TestClient_Forward_sessionIsSticky(t *testing.T) {
	srv, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	defer srv.Close()

	client := New(srv.Endpoint, WithLogger(quietLogger()))
	_, session := client.Forward(context.Background(), `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`, "")
	require.NotEmpty(t, session)

	_, next := client.Forward(context.Background(), `{"jsonrpc":"2.0","id":2,"method":"ping"}`, session)
	assert.EqualValues(t, session, next)

	calls := srv.Calls()
	require.Len(t, calls, 2)
	assert.EqualValues(t, mock.Call{Method: "initialize", SessionID: ""}, calls[0])
	assert.EqualValues(t, mock.Call{Method: "ping", SessionID: session}, calls[1])
}

func TestClient_Forward_deferredCall(t *testing.T) {
	srv, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	defer srv.Close()

	var pushed []string
	client := New(srv.Endpoint,
		WithLogger(quietLogger()),
		WithProgressSink(func(data string) { pushed = append(pushed, data) }))

	line := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"long_task","arguments":{"text":"finished"}}}`
	body, _ := client.Forward(context.Background(), line, "")

	decoded := decodeReply(t, body)
	assert.EqualValues(t, 7, decoded.Id)
	result := &protocol.CallToolResult{}
	require.NoError(t, json.Unmarshal(decoded.Result, result))
	require.Len(t, result.Content, 1)
	assert.EqualValues(t, "finished", result.Content[0].Text)

	// Two default progress notifications precede the terminal event.
	require.Len(t, pushed, 2)
	for _, payload := range pushed {
		push := &struct {
			Method string `json:"method"`
		}{}
		require.NoError(t, json.Unmarshal([]byte(payload), push))
		assert.EqualValues(t, protocol.MethodNotificationProgress, push.Method)
	}
	assert.EqualValues(t, 0, srv.PendingTasks())
}

func TestClient_Forward_deferredCallCustomProgress(t *testing.T) {
	srv, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	defer srv.Close()
	srv.ProgressPayloads = []string{`{"jsonrpc":"2.0","method":"notifications/progress","params":{"progress":1}}`}

	var pushed []string
	client := New(srv.Endpoint,
		WithLogger(quietLogger()),
		WithProgressSink(func(data string) { pushed = append(pushed, data) }))
	line := `{"jsonrpc":"2.0","id":8,"method":"tools/call","params":{"name":"long_task"}}`
	body, _ := client.Forward(context.Background(), line, "")

	assert.EqualValues(t, srv.ProgressPayloads, pushed)
	decoded := decodeReply(t, body)
	result := &protocol.CallToolResult{}
	require.NoError(t, json.Unmarshal(decoded.Result, result))
	require.Len(t, result.Content, 1)
	assert.EqualValues(t, "done", result.Content[0].Text)
}

func TestClient_Forward_runCommand(t *testing.T) {
	srv, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	defer srv.Close()

	client := New(srv.Endpoint, WithLogger(quietLogger()))
	line := `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"run_command","arguments":{"command":"echo bridge"}}}`
	body, _ := client.Forward(context.Background(), line, "")

	decoded := decodeReply(t, body)
	require.Nil(t, decoded.Error)
	result := &protocol.CallToolResult{}
	require.NoError(t, json.Unmarshal(decoded.Result, result))
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, "bridge")
	assert.Nil(t, result.IsError)
}

func TestClient_Forward_httpErrorPassthrough(t *testing.T) {
	srv, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	defer srv.Close()
	errorBody := `{"jsonrpc":"2.0","id":3,"error":{"code":-32000,"message":"tool crashed"}}`
	srv.RPCHandler = func(w http.ResponseWriter, r *http.Request) {
		// A session header on an error reply must not stick.
		w.Header().Set(schema.SessionHeader, "replacement")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(errorBody))
	}

	client := New(srv.Endpoint, WithLogger(quietLogger()))
	body, session := client.Forward(context.Background(), `{"jsonrpc":"2.0","id":3,"method":"ping"}`, "held")

	assert.EqualValues(t, errorBody, body)
	assert.EqualValues(t, "held", session)
}

func TestClient_Forward_connectionFailure(t *testing.T) {
	srv, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	endpoint := srv.Endpoint
	srv.Close()

	client := New(endpoint, WithLogger(quietLogger()))
	body, session := client.Forward(context.Background(), `{"jsonrpc":"2.0","id":9,"method":"ping"}`, "held")

	assert.EqualValues(t, "held", session)
	decoded := decodeReply(t, body)
	assert.Nil(t, decoded.Id)
	require.NotNil(t, decoded.Error)
	assert.EqualValues(t, jsonrpc.InternalError, decoded.Error.Code)
	assert.True(t, strings.HasPrefix(decoded.Error.Message, "Connection failed:"), decoded.Error.Message)
}
