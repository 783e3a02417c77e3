// Package mock simulates the editor-side MCP server surface the bridge
// consumes: a health probe, a JSON-RPC endpoint that defers long-running
// tool calls with 202, and per-task event streams. Endpoint handlers can
// be replaced per test for fault injection.
package mock
