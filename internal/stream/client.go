package stream

import (
	"strings"
	"time"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from a websocket peer
	pongWait = 60 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256

	transportSSE       = "sse"
	transportWebsocket = "websocket"
)

// pingPeriod is the interval between keepalives; must be less than pongWait
var pingPeriod = 15 * time.Second

// Message is a named event with a JSON payload
type Message struct {
	Event string
	Data  []byte
}

// Client represents a connected stream client
type Client struct {
	id          string
	transport   string
	send        chan Message
	connectedAt time.Time
}

func newClient(id, transport string) *Client {
	return &Client{
		id:          id,
		transport:   transport,
		send:        make(chan Message, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ID returns the client's connection ID
func (c *Client) ID() string {
	return c.id
}

// formatSSEMessage formats an SSE message with event name and data
// Multi-line data is properly formatted with "data: " prefix on each line
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	var lines []string
	var current strings.Builder
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current.String())
			current.Reset()
		} else if r != '\r' {
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}
