package wspump

import "sync/atomic"

// LoopState represents the current state of a client's event loop.
type LoopState int32

// Event loop states.
const (
	// StateNotStarted indicates the loop has not yet run.
	StateNotStarted LoopState = iota
	// StateActive indicates the loop is running normally.
	StateActive
	// StateClosingGraceful indicates a close handshake is in progress; the
	// loop keeps servicing reads and commands until the peer acknowledges.
	StateClosingGraceful
	// StateTerminating indicates the loop is shutting down without a close
	// handshake.
	StateTerminating
	// StateStopped is terminal. A stopped client requires a new session.
	StateStopped
)

// String returns the string representation of the LoopState.
func (s LoopState) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateActive:
		return "active"
	case StateClosingGraceful:
		return "closing-graceful"
	case StateTerminating:
		return "terminating"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// atomicState holds a LoopState readable from any goroutine. The loop
// goroutine is the only writer while the loop runs.
type atomicState struct {
	v atomic.Int32
}

func (s *atomicState) get() LoopState {
	return LoopState(s.v.Load())
}

func (s *atomicState) set(state LoopState) {
	s.v.Store(int32(state))
}
