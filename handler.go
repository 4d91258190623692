package wspump

// Handler receives lifecycle and message callbacks from a Client's event
// loop. Callbacks run on the loop's own goroutine and receive the client so
// they can issue further commands synchronously: send, close, or force-quit.
//
// Message payloads are views into the session's buffers. Copy them before
// retaining past the callback.
//
// Embed BaseHandler to implement only the callbacks you need; unset members
// are no-ops.
type Handler interface {
	// OnActivated fires once, after the loop starts and before the first
	// read attempt.
	OnActivated(client *Client)

	// OnPoll fires at the top of every iteration, before the read attempt.
	OnPoll(client *Client)

	// OnIdle fires when a read attempt yields no data.
	OnIdle(client *Client)

	// OnTextMessage fires for each received text message.
	OnTextMessage(client *Client, data []byte)

	// OnBinaryMessage fires for each received binary message.
	OnBinaryMessage(client *Client, data []byte)

	// OnPing fires for each received ping frame. Replying is the session
	// implementation's responsibility, not the handler's.
	OnPing(client *Client, data []byte)

	// OnPong fires for each received pong frame.
	OnPong(client *Client, data []byte)

	// OnConnectionClosed fires when the close handshake completes. reason is
	// nil when the peer gave none.
	OnConnectionClosed(client *Client, reason *string)

	// OnError fires when the loop hits a fatal runtime failure. Direct send
	// failures are returned to the caller instead.
	OnError(client *Client, message string)

	// OnQuit fires last, just before the loop stops.
	OnQuit(client *Client)
}

// BaseHandler is a no-op implementation of every Handler callback. Embed it
// and override only what you need.
type BaseHandler struct{}

var _ Handler = BaseHandler{}

func (BaseHandler) OnActivated(*Client)                 {}
func (BaseHandler) OnPoll(*Client)                      {}
func (BaseHandler) OnIdle(*Client)                      {}
func (BaseHandler) OnTextMessage(*Client, []byte)       {}
func (BaseHandler) OnBinaryMessage(*Client, []byte)     {}
func (BaseHandler) OnPing(*Client, []byte)              {}
func (BaseHandler) OnPong(*Client, []byte)              {}
func (BaseHandler) OnConnectionClosed(*Client, *string) {}
func (BaseHandler) OnError(*Client, string)             {}
func (BaseHandler) OnQuit(*Client)                      {}
