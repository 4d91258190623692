package wspump

import (
	"sync"

	"github.com/rs/zerolog"
)

// closeGuard guarantees a session is closed at most once, no matter how many
// paths race to close it: the loop's graceful completion, an explicit Close,
// or a deferred Shutdown on an abnormal exit path.
type closeGuard struct {
	mu     sync.Mutex
	closed bool
}

// close attempts the close exactly once. Later calls are no-ops. A close
// failure is logged, never escalated: on these paths there is nobody left to
// report it to.
func (g *closeGuard) close(sess Session, status Status, reason string, log zerolog.Logger) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	g.closed = true

	if err := sess.Close(status, reason); err != nil {
		log.Trace().Err(err).Msg("session close attempt failed")
		return
	}
	log.Trace().Msg("session closed")
}
