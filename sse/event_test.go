package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		description string
		block       string
		expect      Event
	}{
		{
			description: "typed event with data",
			block:       "event: progress\ndata: {\"step\":1}",
			expect:      Event{Type: "progress", Data: `{"step":1}`},
		},
		{
			description: "type defaults to message",
			block:       "data: hello",
			expect:      Event{Type: "message", Data: "hello"},
		},
		{
			description: "no data",
			block:       "event: response",
			expect:      Event{Type: "response"},
		},
		{
			description: "last data line wins",
			block:       "data: first\ndata: second",
			expect:      Event{Type: "message", Data: "second"},
		},
		{
			description: "last event line wins",
			block:       "event: progress\nevent: response\ndata: done",
			expect:      Event{Type: "response", Data: "done"},
		},
		{
			description: "unknown field lines are ignored",
			block:       "id: 7\nretry: 100\n: comment\ndata: payload",
			expect:      Event{Type: "message", Data: "payload"},
		},
		{
			description: "values are trimmed",
			block:       "event:   result  \ndata:\t{\"ok\":true} ",
			expect:      Event{Type: "result", Data: `{"ok":true}`},
		},
		{
			description: "carriage returns are trimmed",
			block:       "event: progress\r\ndata: payload\r",
			expect:      Event{Type: "progress", Data: "payload"},
		},
		{
			description: "empty block",
			block:       "",
			expect:      Event{Type: "message"},
		},
	}
	for _, testCase := range testCases {
		actual := Parse(testCase.block)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestEvent_Terminal(t *testing.T) {
	assert.True(t, Event{Type: TypeResponse}.Terminal())
	assert.True(t, Event{Type: TypeResult}.Terminal())
	assert.False(t, Event{Type: TypeProgress}.Terminal())
	assert.False(t, Event{Type: TypeMessage}.Terminal())
}

func TestEvent_Progress(t *testing.T) {
	assert.True(t, Event{Type: TypeProgress}.Progress())
	assert.True(t, Event{Type: TypeNotification}.Progress())
	assert.False(t, Event{Type: TypeResponse}.Progress())
	assert.False(t, Event{Type: "heartbeat"}.Progress())
}
