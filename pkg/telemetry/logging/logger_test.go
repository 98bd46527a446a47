package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("run started", "stage", "generate")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "run started" {
		t.Errorf("Unexpected message: %v", entry["msg"])
	}
	if entry["stage"] != "generate" {
		t.Errorf("Unexpected stage attr: %v", entry["stage"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("should be filtered")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Error("Info log leaked through warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("Warn log missing")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("Expected error for invalid level")
	}
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Error("Expected error for invalid format")
	}
}

func TestNew_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Format: "text", RedactSecrets: true, Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Debug("request sent", "auth", "Bearer sk-abc123def456")

	out := buf.String()
	if strings.Contains(out, "sk-abc123def456") {
		t.Errorf("Expected API key to be redacted, got: %s", out)
	}
}

func TestRedactor_Patterns(t *testing.T) {
	r := NewRedactor()

	tests := []struct {
		in       string
		mustMiss string
	}{
		{"key is sk-proj1234abcd", "sk-proj1234abcd"},
		{"key is gsk_abc123", "gsk_abc123"},
		{"key is hf_ABCdef123", "hf_ABCdef123"},
		{"Authorization: Bearer tok.en-value", "tok.en-value"},
		{`{"api_key": "topsecret99"}`, "topsecret99"},
	}

	for _, tt := range tests {
		got := r.Redact(tt.in)
		if strings.Contains(got, tt.mustMiss) {
			t.Errorf("Redact(%q) = %q, still contains secret", tt.in, got)
		}
	}

	plain := "language Go queued for generation"
	if got := r.Redact(plain); got != plain {
		t.Errorf("Redact mangled innocent text: %q", got)
	}
}
