package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-bridge/sse"
	"github.com/viant/mcp-protocol/schema"
)

// defaultStreamHandler serves the event stream of one deferred call:
// progress events first, then a terminal response event carrying the
// JSON-RPC result. A task stream can be consumed once.
func (s *Service) defaultStreamHandler(w http.ResponseWriter, r *http.Request) {
	taskID := strings.TrimPrefix(r.URL.Path, streamPath)
	call, ok := s.tasks.Remove(taskID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	for _, payload := range s.progressPayloads(call) {
		writeEvent(w, sse.TypeProgress, payload)
		flusher.Flush()
	}
	result, rpcError := s.runTool(r.Context(), call.params)
	var data []byte
	if rpcError != nil {
		data, _ = json.Marshal(&envelope{Jsonrpc: jsonrpc.Version, Id: call.id, Error: rpcError})
	} else {
		resultData, _ := json.Marshal(result)
		data, _ = json.Marshal(&envelope{Jsonrpc: jsonrpc.Version, Id: call.id, Result: resultData})
	}
	writeEvent(w, sse.TypeResponse, string(data))
	flusher.Flush()
}

// progressPayloads returns the interim pushes for one deferred call.
func (s *Service) progressPayloads(call *deferredCall) []string {
	if s.ProgressPayloads != nil {
		return s.ProgressPayloads
	}
	total := 2
	payloads := make([]string, 0, total)
	for step := 1; step <= total; step++ {
		data, _ := json.Marshal(&notification{
			Jsonrpc: jsonrpc.Version,
			Method:  schema.MethodNotificationProgress,
			Params: map[string]interface{}{
				"progressToken": call.taskID,
				"progress":      step,
				"total":         total,
			},
		})
		payloads = append(payloads, string(data))
	}
	return payloads
}

func writeEvent(w io.Writer, eventType, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, data)
}
