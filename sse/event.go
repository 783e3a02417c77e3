// Package sse parses and consumes the editor server event streams that
// resolve deferred JSON-RPC calls.
package sse

import "strings"

// Event types the editor stream emits. Progress and notification events
// are pushed to the client immediately, response and result events
// terminate the stream read.
const (
	TypeMessage      = "message"
	TypeProgress     = "progress"
	TypeNotification = "notification"
	TypeResponse     = "response"
	TypeResult       = "result"
)

// Event is one parsed event block.
type Event struct {
	Type string
	Data string
}

// Parse extracts type and data from one blank-line-delimited event block.
// The type defaults to "message". When a field line repeats within a block
// the last occurrence wins; data lines overwrite rather than concatenate,
// diverging from the event-stream standard to match the editor server
// one-line-per-event framing.
func Parse(block string) Event {
	event := Event{Type: TypeMessage}
	for _, line := range strings.Split(block, "\n") {
		switch {
		case strings.HasPrefix(line, "event:"):
			event.Type = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			event.Data = strings.TrimSpace(line[len("data:"):])
		}
	}
	return event
}

// Terminal reports whether the event carries the final call result.
func (e Event) Terminal() bool {
	return e.Type == TypeResponse || e.Type == TypeResult
}

// Progress reports whether the event is an interim push to forward.
func (e Event) Progress() bool {
	return e.Type == TypeProgress || e.Type == TypeNotification
}
