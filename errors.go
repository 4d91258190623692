package wspump

import (
	"errors"
	"fmt"
	"io"
	"net"
)

// ErrNoMessage is returned by Session.Read when no message is currently
// available on a non-blocking session. The event loop treats it as an idle
// iteration, never as a failure.
var ErrNoMessage = errors.New("wspump: no message available")

// ErrReadTimeout is returned by Session.Read when a bounded read expires
// before a message arrives. Like ErrNoMessage it marks an idle iteration.
var ErrReadTimeout = errors.New("wspump: read timed out")

// ErrLoopStopped is returned when a command is issued against a client whose
// event loop has already reached StateStopped. A stopped client is terminal;
// establish a new session to continue.
var ErrLoopStopped = errors.New("wspump: event loop already stopped")

// ErrSessionConsumed is returned when the session has already been handed to
// the event loop goroutine and can no longer be accessed or run again.
var ErrSessionConsumed = errors.New("wspump: session already handed to the event loop")

// InvalidURIError is returned by the dial functions when the given URI is not
// a valid ws:// or wss:// URI. It surfaces before any network activity.
type InvalidURIError struct {
	URI    string
	Reason string
}

func (e *InvalidURIError) Error() string {
	return fmt.Sprintf("wspump: invalid websocket URI %q: %s", e.URI, e.Reason)
}

// CloseError is returned by Session.Read when the peer has closed the
// connection. Code and Reason carry the peer's close frame contents when
// present; a zero Code with an empty Reason means the peer closed without
// providing either.
type CloseError struct {
	Code   Status
	Reason string
}

func (e *CloseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("wspump: connection closed by peer (status %d)", e.Code)
	}
	return fmt.Sprintf("wspump: connection closed by peer (status %d): %s", e.Code, e.Reason)
}

// reasonPtr converts the close frame contents into the optional reason
// carried by a ConnectionClosed event. A close without a reason maps to nil.
func (e *CloseError) reasonPtr() *string {
	if e.Reason == "" {
		return nil
	}
	reason := e.Reason
	return &reason
}

// ConfigError is returned when an Options value fails validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("wspump: invalid option %s: %s", e.Field, e.Reason)
}

// IsConnectionLost reports whether an error from a Session read or write
// indicates the connection itself is gone, as opposed to a transient failure.
// The event loop uses this to decide whether a failed write is fatal.
func IsConnectionLost(err error) bool {
	if err == nil {
		return false
	}
	var closeErr *CloseError
	return errors.As(err, &closeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed)
}
