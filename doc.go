// Package bridge connects a line-oriented stdio JSON-RPC client to an
// editor MCP server reachable over HTTP. It locates the server by probing
// a well-known port range, forwards each input line verbatim, keeps the
// session header sticky across calls, and resolves 202-deferred calls by
// following their event streams, pushing progress payloads as standalone
// output lines while the call is still in flight.
//
// The bridge is protocol-agnostic above the envelope level:
// it validates that an input line is a JSON-RPC object and lifts its id
// for correlation, but never interprets methods or params. Exactly one
// request is in flight at a time, so output lines correspond to input
// lines in order.
//
// Example:
//
//	err := bridge.Run(os.Args[1:])
//
// or programmatically:
//
//	srv, err := bridge.New(ctx, &bridge.Options{Host: "127.0.0.1", Port: 27000})
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = srv.Serve(ctx)
package bridge
