package wspump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/grafana/regexp"
	"github.com/rs/zerolog"
)

// uriPattern is the shape every dialable URI must have. Deeper validation is
// left to the websocket dialer; this check exists so an obviously bad URI
// fails fast with an InvalidURIError instead of a handshake error.
var uriPattern = regexp.MustCompile(`^wss?://\S+$`)

// websocketSession is the production Session implementation backed by
// github.com/coder/websocket.
//
// The underlying library closes the whole connection when a read context
// expires, so bounded reads cannot be implemented with per-read deadlines.
// Instead a dedicated goroutine owns the transport reads and hands frames
// over a channel; Read waits on that channel, bounded by the configured read
// timeout. The goroutine exits on the first transport error.
//
// The library answers ping frames internally, so MessagePing and MessagePong
// never surface from Read. Writing a MessagePing maps onto the library's
// round-trip ping; writing a MessagePong is a no-op.
type websocketSession struct {
	conn         *websocket.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
	log          zerolog.Logger
	incoming     chan readResult
	termErr      error
}

type readResult struct {
	msg *Message
	err error
}

var _ Session = &websocketSession{}

// dialSession establishes a websocket connection and wraps it as a Session.
// opts must already be validated and resolved.
func dialSession(uri string, headers http.Header, opts *Options) (*websocketSession, error) {
	if !uriPattern.MatchString(uri) {
		return nil, &InvalidURIError{URI: uri, Reason: "expected a ws:// or wss:// URI"}
	}

	log := opts.logger()

	dialOptions := &websocket.DialOptions{HTTPHeader: headers}
	if opts.NoDelay {
		dialOptions.HTTPClient = noDelayHTTPClient()
	}

	conn, resp, err := websocket.Dial(context.Background(), uri, dialOptions)
	if err != nil {
		return nil, fmt.Errorf("wspump: dial %q: %w", uri, err)
	}

	if resp != nil && log.GetLevel() <= zerolog.TraceLevel {
		log.Trace().Int("status", resp.StatusCode).Msg("connected to the server")
		for header := range resp.Header {
			log.Trace().Str("header", header).Msg("handshake response header")
		}
	}

	s := &websocketSession{
		conn:         conn,
		readTimeout:  opts.ReadTimeout,
		writeTimeout: opts.WriteTimeout,
		log:          log,
		incoming:     make(chan readResult, 16),
	}
	go s.readFrames()
	return s, nil
}

// noDelayHTTPClient returns an http.Client whose underlying TCP connections
// have TCP_NODELAY enabled.
func noDelayHTTPClient() *http.Client {
	dialer := &net.Dialer{}
	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				conn, err := dialer.DialContext(ctx, network, addr)
				if err != nil {
					return nil, err
				}
				if tcpConn, ok := conn.(*net.TCPConn); ok {
					if err := tcpConn.SetNoDelay(true); err != nil {
						_ = conn.Close()
						return nil, err
					}
				}
				return conn, nil
			},
		},
	}
}

// readFrames owns the transport reads. It exits on the first error, leaving
// the mapped error as the channel's final value.
func (s *websocketSession) readFrames() {
	defer close(s.incoming)
	for {
		messageType, data, err := s.conn.Read(context.Background())
		if err != nil {
			s.incoming <- readResult{err: mapReadError(err)}
			return
		}

		msg := &Message{Data: data}
		switch messageType {
		case websocket.MessageText:
			msg.Type = MessageText
		case websocket.MessageBinary:
			msg.Type = MessageBinary
		default:
			s.log.Trace().Int("type", int(messageType)).Msg("ignoring unsupported frame")
			continue
		}
		s.incoming <- readResult{msg: msg}
	}
}

func mapReadError(err error) error {
	var closeErr websocket.CloseError
	if errors.As(err, &closeErr) {
		return &CloseError{Code: closeErr.Code, Reason: closeErr.Reason}
	}
	if errors.Is(err, io.EOF) {
		return &CloseError{Code: StatusNoStatusRcvd}
	}
	return err
}

// Read returns the next frame, bounded by the configured read timeout. With
// no timeout configured the read blocks until a frame arrives. Implements
// Session.Read.
func (s *websocketSession) Read(ctx context.Context) (*Message, error) {
	if s.termErr != nil {
		return nil, s.termErr
	}

	var timeout <-chan time.Time
	if s.readTimeout > 0 {
		timer := time.NewTimer(s.readTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case result, ok := <-s.incoming:
		if !ok {
			return nil, net.ErrClosed
		}
		if result.err != nil {
			s.termErr = result.err
			return nil, result.err
		}
		return result.msg, nil
	case <-timeout:
		return nil, ErrReadTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Write sends a frame, bounded by the configured write timeout. Implements
// Session.Write.
func (s *websocketSession) Write(ctx context.Context, msg *Message) error {
	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
	}

	switch msg.Type {
	case MessageText:
		return s.conn.Write(ctx, websocket.MessageText, msg.Data)
	case MessageBinary:
		return s.conn.Write(ctx, websocket.MessageBinary, msg.Data)
	case MessagePing:
		return s.conn.Ping(ctx)
	case MessagePong:
		// The transport answers pings internally. Nothing to do.
		return nil
	default:
		return fmt.Errorf("wspump: unsupported message type %v", msg.Type)
	}
}

// Close closes the connection with the given status code and reason.
// Implements Session.Close.
func (s *websocketSession) Close(status Status, reason string) error {
	return s.conn.Close(status, reason)
}
