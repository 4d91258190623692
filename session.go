package wspump

import "context"

// Session is an established duplex connection to a remote endpoint. Protocol
// framing, handshakes, and TLS are internal to the implementation; the event
// loop only ever reads, writes, and closes.
//
// Read outcomes are distinguished through the returned error:
//
//   - (*Message, nil): a message is ready for dispatch.
//   - ErrNoMessage: no data available right now (non-blocking sessions).
//   - ErrReadTimeout: a bounded read expired without data.
//   - *CloseError (or io.EOF): the peer closed the connection.
//   - any other error: a fatal I/O or protocol failure.
//
// At most one goroutine may operate a Session at any instant. When a session
// must be visible from two call sites, wrap it in a SessionGuard.
type Session interface {
	// Read attempts to read the next message. See the type documentation for
	// the error contract.
	Read(ctx context.Context) (*Message, error)

	// Write sends a message. Implementations decide how control frames are
	// mapped onto the underlying transport.
	Write(ctx context.Context, msg *Message) error

	// Close closes the connection with the given status code and reason.
	Close(status Status, reason string) error
}
