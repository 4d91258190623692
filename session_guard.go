package wspump

import (
	"context"
	"sync"
)

// SessionGuard serializes access to a Session shared between two call sites,
// typically the event loop goroutine and the caller that established the
// connection. Whichever side holds the guard has sole read/write rights; the
// other waits.
//
// Because a full blocking read would hold the guard for an unbounded duration
// and starve writers, sessions placed behind a guard must read non-blocking
// or with a short bounded timeout. The async dial functions apply
// DefaultAsyncReadTimeout when none is configured; sessions handed directly
// to NewAsyncClient must keep their own reads bounded.
type SessionGuard struct {
	mu   sync.Mutex
	sess Session
}

// NewSessionGuard wraps sess in a guard. The original session must not be
// used directly afterwards.
func NewSessionGuard(sess Session) *SessionGuard {
	return &SessionGuard{sess: sess}
}

// With runs fn with exclusive access to the underlying session. The guard is
// released when fn returns, on every exit path.
func (g *SessionGuard) With(fn func(Session) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.sess)
}

var _ Session = &SessionGuard{}

// Read acquires the guard for the duration of a single read attempt.
// Implements Session.Read.
func (g *SessionGuard) Read(ctx context.Context) (*Message, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess.Read(ctx)
}

// Write acquires the guard for the duration of a single write.
// Implements Session.Write.
func (g *SessionGuard) Write(ctx context.Context, msg *Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess.Write(ctx, msg)
}

// Close acquires the guard and closes the underlying session.
// Implements Session.Close.
func (g *SessionGuard) Close(status Status, reason string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess.Close(status, reason)
}
