// Runs the bridge against an in-process mock editor server, so the stdio
// protocol can be tried interactively without an editor. Paste JSON-RPC
// lines such as:
//
//	{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}
//	{"jsonrpc":"2.0","id":2,"method":"tools/list"}
//	{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"long_task"}}
package main

import (
	"context"
	"log"

	bridge "github.com/viant/mcp-bridge"
	"github.com/viant/mcp-bridge/upstream/mock"
)

func main() {
	editor, err := mock.NewHTTPTestServer()
	if err != nil {
		log.Fatal(err)
	}
	defer editor.Close()
	log.Printf("mock editor server at %v", editor.Endpoint)

	ctx := context.Background()
	srv, err := bridge.New(ctx, &bridge.Options{
		Host:  editor.Endpoint.Host,
		Port:  editor.Endpoint.Port,
		Debug: true,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := srv.Serve(ctx); err != nil {
		log.Fatal(err)
	}
}
