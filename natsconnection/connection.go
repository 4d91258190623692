// Package natsconnection bridges a NATS subject pair into the
// wspump.Session contract, so a client event loop can run over a NATS broker
// instead of a WebSocket connection. One subject carries inbound frames, the
// other outbound; two sessions created with mirrored subjects form a duplex
// pipe.
package natsconnection

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/corvid-labs/wspump"
)

// DefaultPollInterval bounds a single Read when the context carries no
// deadline. Reads must stay bounded so the session can sit behind a
// wspump.SessionGuard without starving writers.
const DefaultPollInterval = 25 * time.Millisecond

// Frame kind prefix bytes. Every published message starts with one.
const (
	frameText   = 't'
	frameBinary = 'b'
	framePing   = 'p'
	framePong   = 'o'
	frameClose  = 'c'
)

// Session is a wspump.Session carried over a NATS subject pair.
type Session struct {
	conn         *nats.Conn
	sub          *nats.Subscription
	writeSubject string
	pollInterval time.Duration
}

var _ wspump.Session = &Session{}

// New subscribes to readSubject and returns a session that publishes to
// writeSubject.
func New(conn *nats.Conn, readSubject, writeSubject string) (*Session, error) {
	sub, err := conn.SubscribeSync(readSubject)
	if err != nil {
		return nil, fmt.Errorf("natsconnection: subscribe %q: %w", readSubject, err)
	}
	return &Session{
		conn:         conn,
		sub:          sub,
		writeSubject: writeSubject,
		pollInterval: DefaultPollInterval,
	}, nil
}

// NewPair creates two sessions over fresh unique subjects wired back to
// back, forming an in-broker duplex pipe. Useful for tests and for pairing a
// client loop with an in-process peer.
func NewPair(conn *nats.Conn) (*Session, *Session, error) {
	subjectA := "wspump." + uuid.NewString()
	subjectB := "wspump." + uuid.NewString()

	left, err := New(conn, subjectA, subjectB)
	if err != nil {
		return nil, nil, err
	}
	right, err := New(conn, subjectB, subjectA)
	if err != nil {
		_ = left.sub.Unsubscribe()
		return nil, nil, err
	}
	return left, right, nil
}

// Read returns the next frame, bounded by the poll interval. Implements
// wspump.Session.Read.
func (s *Session) Read(ctx context.Context) (*wspump.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	msg, err := s.sub.NextMsg(s.pollInterval)
	switch {
	case errors.Is(err, nats.ErrTimeout):
		return nil, wspump.ErrReadTimeout
	case errors.Is(err, nats.ErrConnectionClosed), errors.Is(err, nats.ErrBadSubscription):
		return nil, io.EOF
	case err != nil:
		return nil, err
	}

	return decodeFrame(msg.Data)
}

// Write publishes a frame to the write subject. Implements
// wspump.Session.Write.
func (s *Session) Write(_ context.Context, msg *wspump.Message) error {
	var kind byte
	switch msg.Type {
	case wspump.MessageText:
		kind = frameText
	case wspump.MessageBinary:
		kind = frameBinary
	case wspump.MessagePing:
		kind = framePing
	case wspump.MessagePong:
		kind = framePong
	default:
		return fmt.Errorf("natsconnection: unsupported message type %v", msg.Type)
	}

	frame := make([]byte, 1+len(msg.Data))
	frame[0] = kind
	copy(frame[1:], msg.Data)
	return s.conn.Publish(s.writeSubject, frame)
}

// Close publishes a close frame to the peer, unsubscribes, and flushes.
// Implements wspump.Session.Close.
func (s *Session) Close(status wspump.Status, reason string) error {
	frame := make([]byte, 3+len(reason))
	frame[0] = frameClose
	binary.BigEndian.PutUint16(frame[1:3], uint16(status))
	copy(frame[3:], reason)

	err := s.conn.Publish(s.writeSubject, frame)
	if unsubErr := s.sub.Unsubscribe(); err == nil {
		err = unsubErr
	}
	if flushErr := s.conn.Flush(); err == nil {
		err = flushErr
	}
	return err
}

func decodeFrame(data []byte) (*wspump.Message, error) {
	if len(data) == 0 {
		return nil, errors.New("natsconnection: empty frame")
	}

	payload := data[1:]
	switch data[0] {
	case frameText:
		return &wspump.Message{Type: wspump.MessageText, Data: payload}, nil
	case frameBinary:
		return &wspump.Message{Type: wspump.MessageBinary, Data: payload}, nil
	case framePing:
		return &wspump.Message{Type: wspump.MessagePing, Data: payload}, nil
	case framePong:
		return &wspump.Message{Type: wspump.MessagePong, Data: payload}, nil
	case frameClose:
		if len(payload) < 2 {
			return nil, &wspump.CloseError{}
		}
		return nil, &wspump.CloseError{
			Code:   wspump.Status(binary.BigEndian.Uint16(payload[:2])),
			Reason: string(payload[2:]),
		}
	default:
		return nil, fmt.Errorf("natsconnection: unknown frame kind %q", data[0])
	}
}
