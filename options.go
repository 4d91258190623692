package wspump

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultEventBuffer is the capacity of an AsyncClient's outward event
// channel when Options.EventBuffer is zero.
const DefaultEventBuffer = 256

// DefaultCommandBuffer is the capacity of an AsyncClient's inward command
// channel when Options.CommandBuffer is zero.
const DefaultCommandBuffer = 64

// DefaultAsyncReadTimeout is the read bound the async dial functions apply
// when Options.ReadTimeout is zero. The loop goroutine shares its session
// with the caller through a SessionGuard until Run is called, so reads must
// not hold the guard indefinitely.
const DefaultAsyncReadTimeout = 100 * time.Millisecond

// Options configures a client. The zero value is valid: no spin-wait,
// unbounded reads and writes, NODELAY off, and no logging.
type Options struct {
	// SpinWait is the duration the event loop sleeps after an iteration in
	// which the read yielded no data. Zero means no sleep: the loop spins,
	// trading CPU for latency.
	SpinWait time.Duration

	// ReadTimeout bounds a single read attempt. Zero means the read blocks
	// until a message arrives; in that case command servicing is deferred
	// until a frame is received, a known limitation of the blocking flavor.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single write. Zero means no bound.
	WriteTimeout time.Duration

	// NoDelay enables TCP_NODELAY on the underlying connection when dialing.
	NoDelay bool

	// EventBuffer is the capacity of the async flavor's event channel. Zero
	// selects DefaultEventBuffer. When the buffer is full an event is logged
	// and dropped rather than blocking the loop.
	EventBuffer int

	// CommandBuffer is the capacity of the async flavor's command channel.
	// Zero selects DefaultCommandBuffer.
	CommandBuffer int

	// Logger receives trace and error logging from the client. Nil disables
	// logging entirely.
	Logger *zerolog.Logger
}

// Validate checks the options for values that can never be correct. It is
// called by the dial functions and client constructors.
func (o *Options) Validate() error {
	if o == nil {
		return nil
	}
	if o.SpinWait < 0 {
		return &ConfigError{Field: "SpinWait", Reason: "must not be negative"}
	}
	if o.ReadTimeout < 0 {
		return &ConfigError{Field: "ReadTimeout", Reason: "must not be negative"}
	}
	if o.WriteTimeout < 0 {
		return &ConfigError{Field: "WriteTimeout", Reason: "must not be negative"}
	}
	if o.EventBuffer < 0 {
		return &ConfigError{Field: "EventBuffer", Reason: "must not be negative"}
	}
	if o.CommandBuffer < 0 {
		return &ConfigError{Field: "CommandBuffer", Reason: "must not be negative"}
	}
	return nil
}

// resolve returns a copy with nil normalized to the zero value, so callers
// may pass nil for defaults.
func (o *Options) resolve() Options {
	if o == nil {
		return Options{}
	}
	return *o
}

func (o *Options) logger() zerolog.Logger {
	if o == nil || o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}
