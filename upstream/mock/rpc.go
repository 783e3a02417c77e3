package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/viant/jsonrpc"
	wire "github.com/viant/mcp-bridge/schema"
	"github.com/viant/mcp-protocol/schema"
)

// defaultRPCHandler decodes one JSON-RPC request and dispatches it the way
// the editor plugin does: initialize issues a fresh session id, tools/call
// of the slow tool defers with 202, everything else answers inline.
func (s *Service) defaultRPCHandler(w http.ResponseWriter, r *http.Request) {
	defer func() { _ = r.Body.Close() }()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	request := &jsonrpc.Request{}
	if err := json.Unmarshal(data, request); err != nil {
		s.replyError(w, nil, jsonrpc.NewParsingError(err.Error(), nil))
		return
	}
	s.recordCall(request.Method, r.Header.Get(wire.SessionHeader))
	switch request.Method {
	case schema.MethodInitialize:
		s.initialize(w, request)
	case schema.MethodPing:
		s.reply(w, request.Id, &schema.PingResult{})
	case schema.MethodToolsList:
		s.reply(w, request.Id, s.listTools())
	case schema.MethodToolsCall:
		s.callTool(w, r, request)
	default:
		if request.Id == nil {
			// Notifications are accepted silently.
			return
		}
		s.replyError(w, request.Id, jsonrpc.NewMethodNotFound(fmt.Sprintf("method %q not found", request.Method), nil))
	}
}

func (s *Service) initialize(w http.ResponseWriter, request *jsonrpc.Request) {
	session := uuid.New().String()
	s.recordSession(session)
	w.Header().Set(wire.SessionHeader, session)
	s.reply(w, request.Id, &schema.InitializeResult{
		ProtocolVersion: schema.LatestProtocolVersion,
		ServerInfo:      schema.Implementation{Name: "mock-editor", Version: "1.0"},
		Capabilities:    schema.ServerCapabilities{Tools: &schema.ServerCapabilitiesTools{}},
	})
}

func (s *Service) callTool(w http.ResponseWriter, r *http.Request, request *jsonrpc.Request) {
	params := &schema.CallToolRequestParams{}
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, params); err != nil {
			s.replyError(w, request.Id, jsonrpc.NewInvalidParamsError(err.Error(), nil))
			return
		}
	}
	if params.Name == toolLongTask {
		s.deferCall(w, r, request, params)
		return
	}
	result, rpcError := s.runTool(r.Context(), params)
	if rpcError != nil {
		s.replyError(w, request.Id, rpcError)
		return
	}
	s.reply(w, request.Id, result)
}

// deferCall answers 202 with a deferral descriptor pointing at the task
// stream that eventually resolves the call.
func (s *Service) deferCall(w http.ResponseWriter, r *http.Request, request *jsonrpc.Request, params *schema.CallToolRequestParams) {
	taskID := uuid.New().String()
	s.tasks.Put(taskID, &deferredCall{taskID: taskID, id: request.Id, params: params})
	s.write(w, http.StatusAccepted, &wire.Deferral{
		Status: wire.StatusAccepted,
		SSEURL: "http://" + r.Host + streamPath + taskID,
		TaskID: taskID,
	})
}

func (s *Service) reply(w http.ResponseWriter, id interface{}, result interface{}) {
	data, err := json.Marshal(result)
	if err != nil {
		s.replyError(w, id, jsonrpc.NewInternalError(err.Error(), nil))
		return
	}
	s.write(w, http.StatusOK, &envelope{Jsonrpc: jsonrpc.Version, Id: id, Result: data})
}

func (s *Service) replyError(w http.ResponseWriter, id interface{}, rpcError *jsonrpc.Error) {
	s.write(w, http.StatusOK, &envelope{Jsonrpc: jsonrpc.Version, Id: id, Error: rpcError})
}

func (s *Service) write(w http.ResponseWriter, status int, message interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(message)
}
