package wspump

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client is the callback-flavor client. Run executes the event loop on the
// calling goroutine and delivers every outcome through the given Handler.
// From inside a callback the handler may issue further commands directly on
// the client, without any queuing: SendText, SendBinary, SendPing, SendPong,
// Close, and ForceQuit.
//
// A Client is single-goroutine by design: exactly one goroutine establishes
// the session, runs the loop, and issues commands from callbacks. For
// cross-goroutine use see AsyncClient.
type Client struct {
	id      string
	sess    Session
	opts    Options
	log     zerolog.Logger
	closer  *closeGuard
	lp      *loop
	handler Handler
}

var _ eventSink = &Client{}

// Dial connects to a WebSocket server and returns a callback-flavor client.
// The URI must use the ws:// or wss:// scheme.
func Dial(uri string, opts *Options) (*Client, error) {
	return DialWithHeaders(uri, nil, opts)
}

// DialWithHeaders connects with custom handshake headers, for example an
// Authorization header.
func DialWithHeaders(uri string, headers http.Header, opts *Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	resolved := opts.resolve()
	sess, err := dialSession(uri, headers, &resolved)
	if err != nil {
		return nil, err
	}
	return NewClient(sess, &resolved)
}

// NewClient wraps an already established Session in a callback-flavor client.
// Use this with custom Session implementations such as
// natsconnection.Session.
func NewClient(sess Session, opts *Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := opts.logger().With().Str("client", id).Logger()
	resolved := opts.resolve()

	c := &Client{
		id:     id,
		sess:   sess,
		opts:   resolved,
		log:    log,
		closer: &closeGuard{},
	}
	c.lp = &loop{
		sess:     sess,
		sink:     c,
		closer:   c.closer,
		spinWait: resolved.SpinWait,
		log:      log,
	}
	return c, nil
}

// ID returns the client's unique identifier, as used in log fields.
func (c *Client) ID() string {
	return c.id
}

// State returns the current event loop state.
func (c *Client) State() LoopState {
	return c.lp.state.get()
}

// Session returns the underlying session. Use with caution: reading from it
// while the loop runs corrupts the loop's view of the connection.
func (c *Client) Session() Session {
	return c.sess
}

// Run executes the event loop until it stops, delivering outcomes through
// handler. It returns ErrLoopStopped when the loop has already run; a
// stopped client is terminal and a new session is required.
//
// If the session reads with no timeout, commands issued from OnPoll or OnIdle
// are not serviced until a frame arrives. This is a documented limitation of
// blocking reads, not a defect.
func (c *Client) Run(handler Handler) error {
	if c.lp.state.get() != StateNotStarted {
		return ErrLoopStopped
	}
	if handler == nil {
		handler = BaseHandler{}
	}
	c.handler = handler
	c.lp.run()
	return nil
}

// SendText sends a text message through the session. The write happens
// immediately; any failure is returned to the caller rather than reported
// through the handler.
func (c *Client) SendText(text string) error {
	return c.write(&Message{Type: MessageText, Data: []byte(text)})
}

// SendBinary sends a binary message through the session.
func (c *Client) SendBinary(data []byte) error {
	return c.write(&Message{Type: MessageBinary, Data: data})
}

// SendPing sends a ping frame.
func (c *Client) SendPing(data []byte) error {
	return c.write(&Message{Type: MessagePing, Data: data})
}

// SendPong sends a pong frame.
func (c *Client) SendPong(data []byte) error {
	return c.write(&Message{Type: MessagePong, Data: data})
}

func (c *Client) write(msg *Message) error {
	if err := c.sess.Write(context.Background(), msg); err != nil {
		c.log.Error().Err(err).Stringer("type", msg.Type).Msg("error sending message")
		return err
	}
	c.log.Trace().Stringer("type", msg.Type).Msg("sent message")
	return nil
}

// Close starts a graceful close handshake: the close frame is sent at most
// once, and the loop keeps running until the peer acknowledges, a force quit
// intervenes, or a read fails. Calling Close again is a no-op.
//
// Closing before Run prevents the loop from ever starting.
func (c *Client) Close() {
	c.closer.close(c.sess, StatusNormalClosure, "", c.log)
	switch c.lp.state.get() {
	case StateNotStarted, StateActive:
		c.lp.state.set(StateClosingGraceful)
	}
}

// ForceQuit terminates the loop as soon as the current callback returns,
// skipping the close handshake. OnQuit still fires; OnConnectionClosed does
// not.
func (c *Client) ForceQuit() {
	if c.lp.state.get() != StateStopped {
		c.lp.state.set(StateTerminating)
	}
}

// Shutdown releases the session if nothing else has. It is designed to be
// deferred right after construction so the session is closed on every exit
// path, including early returns before or during Run. It never emits
// lifecycle events and never closes a session twice.
func (c *Client) Shutdown() {
	c.closer.close(c.sess, StatusNormalClosure, "", c.log)
}

// eventSink implementation: handler callbacks run synchronously on the loop
// goroutine and receive payloads as views into the session's buffers.

func (c *Client) activated() { c.handler.OnActivated(c) }
func (c *Client) poll()      { c.handler.OnPoll(c) }
func (c *Client) idle()      { c.handler.OnIdle(c) }

func (c *Client) message(msg *Message) {
	switch msg.Type {
	case MessageText:
		c.handler.OnTextMessage(c, msg.Data)
	case MessageBinary:
		c.handler.OnBinaryMessage(c, msg.Data)
	case MessagePing:
		c.handler.OnPing(c, msg.Data)
	case MessagePong:
		c.handler.OnPong(c, msg.Data)
	}
}

func (c *Client) closed(reason *string) { c.handler.OnConnectionClosed(c, reason) }
func (c *Client) failure(message string) { c.handler.OnError(c, message) }
func (c *Client) quit()                 { c.handler.OnQuit(c) }
