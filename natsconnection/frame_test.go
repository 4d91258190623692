package natsconnection

import (
	"errors"
	"testing"

	"github.com/corvid-labs/wspump"
)

func TestDecodeFrameMessages(t *testing.T) {
	cases := []struct {
		name     string
		frame    []byte
		wantType wspump.MessageType
		wantData string
	}{
		{"text", []byte("thello"), wspump.MessageText, "hello"},
		{"binary", []byte{frameBinary, 0x01, 0x02}, wspump.MessageBinary, "\x01\x02"},
		{"ping", []byte("pk1"), wspump.MessagePing, "k1"},
		{"pong", []byte("ok1"), wspump.MessagePong, "k1"},
		{"empty text", []byte("t"), wspump.MessageText, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := decodeFrame(tc.frame)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if msg.Type != tc.wantType {
				t.Errorf("expected type %v, got %v", tc.wantType, msg.Type)
			}
			if string(msg.Data) != tc.wantData {
				t.Errorf("expected payload %q, got %q", tc.wantData, msg.Data)
			}
		})
	}
}

func TestDecodeFrameClose(t *testing.T) {
	t.Run("with status and reason", func(t *testing.T) {
		frame := []byte{frameClose, 0x03, 0xe9}
		frame = append(frame, "going away"...)

		_, err := decodeFrame(frame)
		var closeErr *wspump.CloseError
		if !errors.As(err, &closeErr) {
			t.Fatalf("expected CloseError, got %v", err)
		}
		if closeErr.Code != wspump.StatusGoingAway {
			t.Errorf("expected status 1001, got %d", closeErr.Code)
		}
		if closeErr.Reason != "going away" {
			t.Errorf("expected reason 'going away', got %q", closeErr.Reason)
		}
	})

	t.Run("bare close frame", func(t *testing.T) {
		_, err := decodeFrame([]byte{frameClose})
		var closeErr *wspump.CloseError
		if !errors.As(err, &closeErr) {
			t.Fatalf("expected CloseError, got %v", err)
		}
		if closeErr.Reason != "" {
			t.Errorf("expected empty reason, got %q", closeErr.Reason)
		}
	})
}

func TestDecodeFrameRejectsMalformed(t *testing.T) {
	if _, err := decodeFrame(nil); err == nil {
		t.Error("expected an error for an empty frame")
	}
	if _, err := decodeFrame([]byte{'z', 1, 2}); err == nil {
		t.Error("expected an error for an unknown frame kind")
	}
}
