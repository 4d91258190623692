package wspump

import "fmt"

// EventKind discriminates the type of an Event.
type EventKind int

// Event kinds, in rough lifecycle order.
const (
	// EventActivated is emitted once, before the first read attempt.
	EventActivated EventKind = iota + 1
	// EventTextMessage carries a received text message in Data.
	EventTextMessage
	// EventBinaryMessage carries a received binary message in Data.
	EventBinaryMessage
	// EventPing carries a received ping frame's payload in Data.
	EventPing
	// EventPong carries a received pong frame's payload in Data.
	EventPong
	// EventConnectionClosed is emitted when the close handshake completes.
	// Reason carries the peer's close reason when one was given.
	EventConnectionClosed
	// EventError carries a description of a fatal runtime failure in Err.
	EventError
	// EventQuit is the last event emitted before the loop stops.
	EventQuit
)

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	switch k {
	case EventActivated:
		return "activated"
	case EventTextMessage:
		return "text-message"
	case EventBinaryMessage:
		return "binary-message"
	case EventPing:
		return "ping"
	case EventPong:
		return "pong"
	case EventConnectionClosed:
		return "connection-closed"
	case EventError:
		return "error"
	case EventQuit:
		return "quit"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Event is a single outcome delivered through an AsyncClient's event channel.
// Events are emitted in loop-iteration order, never reordered or coalesced,
// and payloads are owned copies safe to retain.
type Event struct {
	Kind EventKind

	// Data is the message payload for text, binary, ping, and pong events.
	Data []byte

	// Reason is the peer's close reason for EventConnectionClosed. Nil when
	// the peer gave none.
	Reason *string

	// Err describes the failure for EventError.
	Err string
}
