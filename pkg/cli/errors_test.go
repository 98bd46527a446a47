package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("polish.batch_size", "must be at least 1")
	if !strings.Contains(err.Error(), "polish.batch_size") {
		t.Errorf("Expected field in message, got %q", err.Error())
	}

	err = NewConfigError("", "file not found")
	if got := err.Error(); got != "config error: file not found" {
		t.Errorf("Unexpected fieldless message: %q", got)
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	inner := errors.New("queue exhausted")
	err := NewCommandError("generate", inner)

	if !errors.Is(err, inner) {
		t.Error("Expected CommandError to unwrap to the inner error")
	}
	if !strings.Contains(err.Error(), "generate") {
		t.Errorf("Expected command name in message, got %q", err.Error())
	}
}
