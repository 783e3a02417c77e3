package schema

import (
	"encoding/json"

	"github.com/viant/jsonrpc"
)

// errorEnvelope shapes errors the bridge synthesizes itself, i.e. parse
// failures and unreachable upstream. Id marshals as an explicit null when
// absent so clients that key on the field always see it; correlation with
// the originating request id happens at emission time.
type errorEnvelope struct {
	Jsonrpc string         `json:"jsonrpc"`
	Id      interface{}    `json:"id"`
	Error   *jsonrpc.Error `json:"error"`
}

// ErrorBody renders a bridge-synthesized JSON-RPC error as one wire line.
func ErrorBody(id interface{}, rpcError *jsonrpc.Error) string {
	data, _ := json.Marshal(&errorEnvelope{Jsonrpc: jsonrpc.Version, Id: id, Error: rpcError})
	return string(data)
}
