package wspump_test

import (
	"testing"

	"github.com/corvid-labs/wspump"
)

func TestLoopStateString(t *testing.T) {
	cases := map[wspump.LoopState]string{
		wspump.StateNotStarted:      "not-started",
		wspump.StateActive:          "active",
		wspump.StateClosingGraceful: "closing-graceful",
		wspump.StateTerminating:     "terminating",
		wspump.StateStopped:         "stopped",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("LoopState(%d).String() = %q, want %q", state, got, want)
		}
	}
}

func TestEventKindString(t *testing.T) {
	if got := wspump.EventConnectionClosed.String(); got != "connection-closed" {
		t.Errorf("unexpected event kind string %q", got)
	}
	if got := wspump.EventKind(99).String(); got != "unknown(99)" {
		t.Errorf("unexpected unknown kind string %q", got)
	}
}

func TestCommandKindString(t *testing.T) {
	if got := wspump.CommandForceQuit.String(); got != "force-quit" {
		t.Errorf("unexpected command kind string %q", got)
	}
}
