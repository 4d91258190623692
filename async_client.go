package wspump

import (
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AsyncClient is the channel-flavor client. Run hands the session to a new
// goroutine and returns immediately; all further interaction happens through
// the command and event channels. Commands may be enqueued from any number of
// goroutines and are applied in enqueue order; events arrive in
// loop-iteration order with owned payload copies, safe to retain.
//
// Until Run is called the session can be inspected through WithSession, which
// arbitrates access between the caller and the loop goroutine. To keep that
// arbitration fair, reads are always bounded: a zero Options.ReadTimeout is
// replaced with DefaultAsyncReadTimeout.
type AsyncClient struct {
	id       string
	guard    *SessionGuard
	opts     Options
	log      zerolog.Logger
	closer   *closeGuard
	lp       *loop
	commands chan Command
	events   chan Event
	done     chan struct{}
	started  atomic.Bool
}

var _ eventSink = &AsyncClient{}
var _ commandSource = &AsyncClient{}

// JoinHandle lets the caller await event loop termination.
type JoinHandle struct {
	done chan struct{}
}

// Wait blocks until the event loop has stopped.
func (h *JoinHandle) Wait() {
	<-h.done
}

// Done returns a channel closed when the event loop has stopped.
func (h *JoinHandle) Done() <-chan struct{} {
	return h.done
}

// DialAsync connects to a WebSocket server and returns a channel-flavor
// client. The URI must use the ws:// or wss:// scheme.
func DialAsync(uri string, opts *Options) (*AsyncClient, error) {
	return DialAsyncWithHeaders(uri, nil, opts)
}

// DialAsyncWithHeaders connects with custom handshake headers.
func DialAsyncWithHeaders(uri string, headers http.Header, opts *Options) (*AsyncClient, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	resolved := opts.resolve()
	if resolved.ReadTimeout == 0 {
		resolved.ReadTimeout = DefaultAsyncReadTimeout
	}
	sess, err := dialSession(uri, headers, &resolved)
	if err != nil {
		return nil, err
	}
	return NewAsyncClient(sess, &resolved)
}

// NewAsyncClient wraps an already established Session in a channel-flavor
// client. The session must read non-blocking or with a short timeout: a full
// blocking read would hold the session guard indefinitely and starve the
// caller's pre-run access.
func NewAsyncClient(sess Session, opts *Options) (*AsyncClient, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := opts.logger().With().Str("client", id).Logger()
	resolved := opts.resolve()

	eventBuffer := resolved.EventBuffer
	if eventBuffer == 0 {
		eventBuffer = DefaultEventBuffer
	}
	commandBuffer := resolved.CommandBuffer
	if commandBuffer == 0 {
		commandBuffer = DefaultCommandBuffer
	}

	c := &AsyncClient{
		id:       id,
		guard:    NewSessionGuard(sess),
		opts:     resolved,
		log:      log,
		closer:   &closeGuard{},
		commands: make(chan Command, commandBuffer),
		events:   make(chan Event, eventBuffer),
		done:     make(chan struct{}),
	}
	c.lp = &loop{
		sess:     c.guard,
		sink:     c,
		src:      c,
		closer:   c.closer,
		spinWait: resolved.SpinWait,
		log:      log,
	}
	return c, nil
}

// ID returns the client's unique identifier, as used in log fields.
func (c *AsyncClient) ID() string {
	return c.id
}

// State returns the current event loop state.
func (c *AsyncClient) State() LoopState {
	return c.lp.state.get()
}

// Events returns the outward event channel. It is closed after the final
// Quit event once the loop has stopped.
func (c *AsyncClient) Events() <-chan Event {
	return c.events
}

// WithSession runs fn with exclusive access to the underlying session, for
// establishment-time inspection before the loop starts. After Run has been
// called it returns ErrSessionConsumed.
func (c *AsyncClient) WithSession(fn func(Session) error) error {
	if c.started.Load() {
		return ErrSessionConsumed
	}
	return c.guard.With(fn)
}

// Run hands the session to a new goroutine running the event loop and
// returns immediately. The returned JoinHandle lets the caller await loop
// termination. Calling Run a second time returns ErrSessionConsumed.
func (c *AsyncClient) Run() (*JoinHandle, error) {
	if !c.started.CompareAndSwap(false, true) {
		return nil, ErrSessionConsumed
	}

	c.log.Debug().Msg("starting event loop goroutine")
	go func() {
		c.lp.run()
		close(c.done)
		close(c.events)
	}()

	return &JoinHandle{done: c.done}, nil
}

// Send enqueues a command for the event loop. It returns ErrLoopStopped when
// the loop has already stopped; a command is never silently accepted after
// that point.
func (c *AsyncClient) Send(cmd Command) error {
	if c.lp.state.get() == StateStopped {
		return ErrLoopStopped
	}
	select {
	case c.commands <- cmd:
		return nil
	case <-c.done:
		return ErrLoopStopped
	}
}

// SendText enqueues a text message send.
func (c *AsyncClient) SendText(text string) error {
	return c.Send(SendText(text))
}

// SendBinary enqueues a binary message send.
func (c *AsyncClient) SendBinary(data []byte) error {
	return c.Send(SendBinary(data))
}

// SendPing enqueues a ping send.
func (c *AsyncClient) SendPing(data []byte) error {
	return c.Send(SendPing(data))
}

// SendPong enqueues a pong send.
func (c *AsyncClient) SendPong(data []byte) error {
	return c.Send(SendPong(data))
}

// Close enqueues a graceful close. The loop keeps servicing reads and
// commands until the peer acknowledges.
func (c *AsyncClient) Close() error {
	return c.Send(Close())
}

// ForceQuit enqueues an immediate termination that skips the close
// handshake. It is observed at the loop's next command drain.
func (c *AsyncClient) ForceQuit() error {
	return c.Send(ForceQuit())
}

// Shutdown releases the session if nothing else has. It is designed to be
// deferred right after construction so the session is closed on every exit
// path, including discarding the client without ever calling Run. It never
// emits lifecycle events and never closes a session twice.
func (c *AsyncClient) Shutdown() {
	c.closer.close(c.guard, StatusNormalClosure, "", c.log)
}

// commandSource implementation.

func (c *AsyncClient) next() (Command, bool) {
	select {
	case cmd := <-c.commands:
		return cmd, true
	default:
		return Command{}, false
	}
}

// eventSink implementation: every event is copied into an owned buffer
// before enqueue, since the consumer may read it after the session's buffers
// are reused. A full event channel is logged and the event dropped; there is
// no receiver to escalate to.

func (c *AsyncClient) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		c.log.Error().Stringer("event", ev.Kind).Msg("event channel full, dropping event")
	}
}

func (c *AsyncClient) activated() {
	c.emit(Event{Kind: EventActivated})
}

func (c *AsyncClient) poll() {}
func (c *AsyncClient) idle() {}

func (c *AsyncClient) message(msg *Message) {
	var kind EventKind
	switch msg.Type {
	case MessageText:
		kind = EventTextMessage
	case MessageBinary:
		kind = EventBinaryMessage
	case MessagePing:
		kind = EventPing
	case MessagePong:
		kind = EventPong
	default:
		return
	}
	c.emit(Event{Kind: kind, Data: cloneBytes(msg.Data)})
}

func (c *AsyncClient) closed(reason *string) {
	c.emit(Event{Kind: EventConnectionClosed, Reason: reason})
}

func (c *AsyncClient) failure(message string) {
	c.emit(Event{Kind: EventError, Err: message})
}

func (c *AsyncClient) quit() {
	c.emit(Event{Kind: EventQuit})
}
