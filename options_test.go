package wspump_test

import (
	"errors"
	"testing"
	"time"

	"github.com/corvid-labs/wspump"
)

func TestOptionsValidate(t *testing.T) {
	t.Run("nil options are valid", func(t *testing.T) {
		var opts *wspump.Options
		if err := opts.Validate(); err != nil {
			t.Errorf("expected nil options to validate, got %v", err)
		}
	})

	t.Run("zero value is valid", func(t *testing.T) {
		if err := (&wspump.Options{}).Validate(); err != nil {
			t.Errorf("expected zero options to validate, got %v", err)
		}
	})

	t.Run("negative durations are rejected", func(t *testing.T) {
		cases := []struct {
			name string
			opts wspump.Options
		}{
			{"SpinWait", wspump.Options{SpinWait: -time.Millisecond}},
			{"ReadTimeout", wspump.Options{ReadTimeout: -time.Second}},
			{"WriteTimeout", wspump.Options{WriteTimeout: -time.Second}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				err := tc.opts.Validate()
				var configErr *wspump.ConfigError
				if !errors.As(err, &configErr) {
					t.Fatalf("expected ConfigError, got %v", err)
				}
				if configErr.Field != tc.name {
					t.Errorf("expected field %q, got %q", tc.name, configErr.Field)
				}
			})
		}
	})

	t.Run("negative buffers are rejected", func(t *testing.T) {
		err := (&wspump.Options{EventBuffer: -1}).Validate()
		var configErr *wspump.ConfigError
		if !errors.As(err, &configErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
	})
}

func TestInvalidOptionsRejectedByConstructors(t *testing.T) {
	bad := &wspump.Options{SpinWait: -time.Millisecond}

	if _, err := wspump.NewClient(newMockSession(), bad); err == nil {
		t.Error("expected NewClient to reject invalid options")
	}
	if _, err := wspump.NewAsyncClient(newMockSession(), bad); err == nil {
		t.Error("expected NewAsyncClient to reject invalid options")
	}
}
