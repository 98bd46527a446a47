package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatText)
	if err := f.FormatTo(&buf, "3 drafts pending"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "3 drafts pending\n" {
		t.Errorf("Unexpected text output: %q", got)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON)

	data := map[string]int{"drafts_pending": 3}
	if err := f.FormatTo(&buf, data); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["drafts_pending"] != 3 {
		t.Errorf("Unexpected decoded value: %v", decoded)
	}
}

func TestNewFormatter_UnknownFallsBackToText(t *testing.T) {
	f := NewFormatter(OutputFormat("yaml"))
	if _, ok := f.(*TextFormatter); !ok {
		t.Errorf("Expected text fallback, got %T", f)
	}
}

func TestJSONFormatter_Indented(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	if err := f.FormatTo(&buf, map[string]string{"stage": "polish"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("Expected indented output, got %q", buf.String())
	}
}
