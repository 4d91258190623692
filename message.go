package wspump

import "fmt"

// MessageType identifies the kind of frame carried by a Message.
type MessageType int

// Message frame types.
const (
	// MessageText is a UTF-8 text message.
	MessageText MessageType = iota + 1
	// MessageBinary is an opaque binary message.
	MessageBinary
	// MessagePing is a ping control frame. Whether pings surface to the
	// application depends on the Session implementation; some transports
	// answer them internally.
	MessagePing
	// MessagePong is a pong control frame.
	MessagePong
)

// String returns the string representation of the MessageType.
func (t MessageType) String() string {
	switch t {
	case MessageText:
		return "text"
	case MessageBinary:
		return "binary"
	case MessagePing:
		return "ping"
	case MessagePong:
		return "pong"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Message is a single frame read from or written to a Session. Data is a view
// into the session's buffers on read; callers that retain it past the current
// loop iteration must copy it first.
type Message struct {
	Type MessageType
	Data []byte
}

// cloneBytes returns an owned copy of b. Events crossing the channel binding
// are copied with this before enqueue, since the receiving goroutine may read
// them after the session's buffers are reused.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
