package wspump_test

import (
	"errors"
	"testing"

	"github.com/corvid-labs/wspump"
)

func TestClientRunIsTerminal(t *testing.T) {
	mock := newMockSession()

	client, err := wspump.NewClient(mock, nil)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}

	handler := &recordingHandler{
		onActivated: func(c *wspump.Client) { c.ForceQuit() },
	}

	if err := client.Run(handler); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if err := client.Run(handler); !errors.Is(err, wspump.ErrLoopStopped) {
		t.Errorf("expected ErrLoopStopped on second run, got %v", err)
	}
}

func TestClientDirectSendReturnsWriteError(t *testing.T) {
	mock := newMockSession()
	wantErr := errors.New("transient")
	mock.failNextWrite(wantErr)

	client, err := wspump.NewClient(mock, nil)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}

	handler := &recordingHandler{
		onActivated: func(c *wspump.Client) {
			if err := c.SendText("first"); !errors.Is(err, wantErr) {
				t.Errorf("expected write error returned to caller, got %v", err)
			}
			if err := c.SendText("second"); err != nil {
				t.Errorf("expected second send to succeed, got %v", err)
			}
			c.ForceQuit()
		},
	}

	if err := client.Run(handler); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	writes := mock.recordedWrites()
	if len(writes) != 1 || string(writes[0].Data) != "second" {
		t.Errorf("unexpected recorded writes: %v", writes)
	}
}

func TestClientShutdownClosesOnce(t *testing.T) {
	t.Run("after graceful close", func(t *testing.T) {
		mock := newMockSession()

		client, err := wspump.NewClient(mock, nil)
		if err != nil {
			t.Fatalf("new client failed: %v", err)
		}
		defer client.Shutdown()

		handler := &recordingHandler{
			onActivated: func(c *wspump.Client) { c.Close() },
		}
		if err := client.Run(handler); err != nil {
			t.Fatalf("run failed: %v", err)
		}

		client.Shutdown()
		if closes := mock.closeCount(); closes != 1 {
			t.Errorf("expected exactly one close across loop and shutdown, got %d", closes)
		}
	})

	t.Run("without ever running", func(t *testing.T) {
		mock := newMockSession()

		client, err := wspump.NewClient(mock, nil)
		if err != nil {
			t.Fatalf("new client failed: %v", err)
		}

		client.Shutdown()
		client.Shutdown()
		if closes := mock.closeCount(); closes != 1 {
			t.Errorf("expected exactly one close attempt, got %d", closes)
		}
	})

	t.Run("after force quit", func(t *testing.T) {
		mock := newMockSession()

		client, err := wspump.NewClient(mock, nil)
		if err != nil {
			t.Fatalf("new client failed: %v", err)
		}

		handler := &recordingHandler{
			onActivated: func(c *wspump.Client) { c.ForceQuit() },
		}
		if err := client.Run(handler); err != nil {
			t.Fatalf("run failed: %v", err)
		}

		// The loop skipped the handshake; the deferred shutdown path must
		// still close the session, exactly once.
		client.Shutdown()
		client.Shutdown()
		if closes := mock.closeCount(); closes != 1 {
			t.Errorf("expected exactly one close attempt, got %d", closes)
		}
	})
}

func TestClientStateProgression(t *testing.T) {
	mock := newMockSession()

	client, err := wspump.NewClient(mock, nil)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}

	if state := client.State(); state != wspump.StateNotStarted {
		t.Errorf("expected not-started before run, got %v", state)
	}

	var observed wspump.LoopState
	handler := &recordingHandler{
		onActivated: func(c *wspump.Client) {
			observed = c.State()
			c.ForceQuit()
		},
	}
	if err := client.Run(handler); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if observed != wspump.StateActive {
		t.Errorf("expected active state inside callback, got %v", observed)
	}
	if state := client.State(); state != wspump.StateStopped {
		t.Errorf("expected stopped after run, got %v", state)
	}
}
