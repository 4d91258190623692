package wspump

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// eventSink delivers loop outcomes outward. The callback binding invokes
// handler methods directly on the loop goroutine; the channel binding copies
// each event into an owned buffer and enqueues it.
type eventSink interface {
	activated()
	poll()
	idle()
	message(msg *Message)
	closed(reason *string)
	failure(message string)
	quit()
}

// commandSource yields commands already enqueued, without blocking. Nil in
// the callback binding, where commands are direct method calls.
type commandSource interface {
	next() (Command, bool)
}

// loop is the iteration engine shared by both client flavors. Each iteration:
// poll hook, drain of currently available commands, exactly one read attempt,
// dispatch, idle hook when the read yielded no data.
//
// Only the loop goroutine moves the state forward, with two exceptions used
// by the callback binding: Client.ForceQuit stores StateTerminating and
// Client.Close stores StateClosingGraceful. Both run on the loop goroutine
// (inside a callback), so state remains single-writer.
type loop struct {
	sess     Session
	sink     eventSink
	src      commandSource
	closer   *closeGuard
	spinWait time.Duration
	log      zerolog.Logger
	state    atomicState
}

// run executes the loop until the state reaches StateStopped. The first
// iteration emits Activated before any read is attempted.
func (l *loop) run() {
	l.log.Debug().Msg("starting event loop")

	l.state.set(StateActive)
	l.sink.activated()

	for {
		switch l.state.get() {
		case StateStopped:
			return
		case StateTerminating:
			l.terminate()
			return
		}

		l.sink.poll()

		l.drainCommands()
		switch l.state.get() {
		case StateStopped:
			return
		case StateTerminating:
			l.terminate()
			return
		}

		l.readOnce()
	}
}

// drainCommands applies every command currently enqueued, in enqueue order.
func (l *loop) drainCommands() {
	if l.src == nil {
		return
	}
	for {
		cmd, ok := l.src.next()
		if !ok {
			return
		}
		l.apply(cmd)
		if l.state.get() == StateStopped {
			return
		}
	}
}

func (l *loop) apply(cmd Command) {
	switch cmd.Kind {
	case CommandSendText:
		l.write(&Message{Type: MessageText, Data: cmd.Data})
	case CommandSendBinary:
		l.write(&Message{Type: MessageBinary, Data: cmd.Data})
	case CommandSendPing:
		l.write(&Message{Type: MessagePing, Data: cmd.Data})
	case CommandSendPong:
		l.write(&Message{Type: MessagePong, Data: cmd.Data})
	case CommandClose:
		l.beginClose()
	case CommandForceQuit:
		l.log.Trace().Msg("force quitting event loop")
		l.terminate()
	default:
		l.log.Error().Stringer("command", cmd.Kind).Msg("unknown command ignored")
	}
}

// write sends a message through the session. A failed write surfaces as an
// Error event; it ends the loop only when the failure indicates the
// connection itself is lost.
func (l *loop) write(msg *Message) {
	if err := l.sess.Write(context.Background(), msg); err != nil {
		l.log.Error().Err(err).Stringer("type", msg.Type).Msg("error sending message")
		l.sink.failure("error sending " + msg.Type.String() + " message: " + err.Error())
		if IsConnectionLost(err) {
			l.terminate()
		}
		return
	}
	l.log.Trace().Stringer("type", msg.Type).Msg("sent message")
}

// beginClose sends the close frame and moves to StateClosingGraceful. The
// loop keeps servicing reads and commands until the peer acknowledges, a
// force quit intervenes, or a read fails.
func (l *loop) beginClose() {
	l.closer.close(l.sess, StatusNormalClosure, "", l.log)
	if l.state.get() != StateTerminating {
		l.state.set(StateClosingGraceful)
	}
}

// readOnce performs exactly one read attempt and dispatches the outcome.
func (l *loop) readOnce() {
	msg, err := l.sess.Read(context.Background())
	if err != nil {
		l.classifyReadError(err)
		return
	}
	l.log.Trace().Stringer("type", msg.Type).Int("bytes", len(msg.Data)).Msg("received message")
	l.sink.message(msg)
}

func (l *loop) classifyReadError(err error) {
	var closeErr *CloseError
	switch {
	case errors.Is(err, ErrNoMessage), errors.Is(err, ErrReadTimeout):
		l.sink.idle()
		if l.spinWait > 0 {
			time.Sleep(l.spinWait)
		}
	case errors.As(err, &closeErr):
		l.log.Trace().Str("reason", closeErr.Reason).Msg("close frame received")
		l.finishGraceful(closeErr.reasonPtr())
	case errors.Is(err, io.EOF):
		l.finishGraceful(nil)
	case l.state.get() == StateClosingGraceful:
		// The session tore down while our close handshake was in flight.
		// Treat it as handshake completion, not a failure.
		l.finishGraceful(nil)
	default:
		l.log.Error().Err(err).Msg("error reading message")
		l.sink.failure("error reading message: " + err.Error())
		l.terminate()
	}
}

// finishGraceful completes the close handshake: exactly one ConnectionClosed
// followed by exactly one Quit, then StateStopped.
func (l *loop) finishGraceful(reason *string) {
	if l.state.get() != StateTerminating {
		l.state.set(StateClosingGraceful)
	}
	l.closer.close(l.sess, StatusNormalClosure, "", l.log)
	l.sink.closed(reason)
	l.sink.quit()
	l.state.set(StateStopped)
	l.log.Debug().Msg("event loop stopped")
}

// terminate ends the loop without a close handshake. Quit is the last event
// on every termination path.
func (l *loop) terminate() {
	l.state.set(StateTerminating)
	l.sink.quit()
	l.state.set(StateStopped)
	l.log.Debug().Msg("event loop stopped")
}
