package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"polyglotpress/lexicon/pkg/providers"
)

func TestNormalizeResponse_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"list of objects", `[{"generated_text":"hello"}]`, "hello"},
		{"list with text key", `[{"text":"hi"}]`, "hi"},
		{"flat generated_text", `{"generated_text":"flat"}`, "flat"},
		{"flat text", `{"text":"flat text"}`, "flat text"},
		{"flat content", `{"content":"flat content"}`, "flat content"},
		{"results list", `{"results":[{"generated_text":"from results"}]}`, "from results"},
		{"results with text", `{"results":[{"text":"r"}]}`, "r"},
		{"prefers generated_text", `{"generated_text":"a","text":"b"}`, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeResponse("hf", json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("normalizeResponse failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalizeResponse_UnknownShapes(t *testing.T) {
	for _, raw := range []string{
		`[]`,
		`[{"other":"x"}]`,
		`{"unexpected":"shape"}`,
		`{"generated_text":42}`,
		`{"results":[]}`,
		`"just a string"`,
	} {
		_, err := normalizeResponse("hf", json.RawMessage(raw))
		var parseErr *providers.ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Expected ParseError for %s, got %T: %v", raw, err, err)
			continue
		}
		if parseErr.RawResponse != raw {
			t.Errorf("Expected raw body %q to be preserved, got %q", raw, parseErr.RawResponse)
		}
	}
}

func TestGenerate_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/mixtral-8x7b" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		body, _ := io.ReadAll(r.Body)
		var req generationRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Inputs != "master\n\nwrite a draft" {
			t.Errorf("Expected system folded into inputs, got %q", req.Inputs)
		}
		if req.Parameters.ReturnFullText {
			t.Error("Expected return_full_text to be false")
		}

		w.Write([]byte(`[{"generated_text":"draft content"}]`))
	}))
	defer server.Close()

	p, err := NewProvider(providers.ProviderConfig{
		Name:           "huggingface",
		Type:           "huggingface",
		BaseURL:        server.URL,
		APIKey:         "hf-key",
		Timeout:        5 * time.Second,
		InitialBackoff: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	defer p.Close()

	resp, err := p.Generate(context.Background(), &providers.GenerationRequest{
		Model:  "mixtral-8x7b",
		System: "master",
		Prompt: "write a draft",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.Content != "draft content" {
		t.Errorf("Unexpected content: %q", resp.Content)
	}
}

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewProvider(providers.ProviderConfig{Name: "huggingface"})
	var cfgErr *providers.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigError, got %T: %v", err, err)
	}
}
