package openai

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

func newTestProvider(t *testing.T, baseURL string) *Provider {
	t.Helper()
	p, err := NewProvider(providers.ProviderConfig{
		Name:           "openai",
		Type:           "openai",
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Timeout:        5 * time.Second,
		MaxRetries:     1,
		InitialBackoff: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	return p
}

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewProvider(providers.ProviderConfig{Name: "openai"})
	var cfgErr *providers.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigError, got %T: %v", err, err)
	}
	if cfgErr.Field != "api_key" {
		t.Errorf("Expected api_key field error, got %q", cfgErr.Field)
	}
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header: %q", auth)
		}

		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("Expected system+user messages, got %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(chatResponse{
			ID:    "chatcmpl-1",
			Model: "gpt-4o-mini",
			Choices: []chatChoice{
				{Message: chatMessage{Role: "assistant", Content: "# Go\n\nchapter text"}},
			},
			Usage: chatUsage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
		})
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	defer p.Close()

	resp, err := p.Generate(context.Background(), &providers.GenerationRequest{
		Model:  "gpt-4o-mini",
		System: "master context",
		Prompt: "write the Go chapter",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.Content != "# Go\n\nchapter text" {
		t.Errorf("Unexpected content: %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 30 {
		t.Errorf("Expected 30 total tokens, got %d", resp.Usage.TotalTokens)
	}
}

func TestGenerate_NoSystemMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		json.Unmarshal(body, &req)
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("Expected a single user message, got %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{Message: chatMessage{Content: "ok"}}},
		})
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	defer p.Close()

	if _, err := p.Generate(context.Background(), &providers.GenerationRequest{
		Model:  "gpt-4o-mini",
		Prompt: "hello",
	}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
}

func TestGenerate_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"chatcmpl-2","choices":[]}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	defer p.Close()

	_, err := p.Generate(context.Background(), &providers.GenerationRequest{
		Model:  "gpt-4o-mini",
		Prompt: "hello",
	})
	var parseErr *providers.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError for empty choices, got %T: %v", err, err)
	}
	if parseErr.RawResponse == "" {
		t.Error("Expected raw response to be preserved")
	}
}

func TestGenerate_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	defer p.Close()

	_, err := p.Generate(context.Background(), &providers.GenerationRequest{
		Model:  "gpt-4o-mini",
		Prompt: "hello",
	})
	var authErr *providers.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected AuthError, got %T: %v", err, err)
	}
}

func TestGenerate_ValidatesRequest(t *testing.T) {
	p := newTestProvider(t, "http://localhost:1")
	defer p.Close()

	if _, err := p.Generate(context.Background(), &providers.GenerationRequest{Prompt: "x"}); err == nil {
		t.Error("Expected error for missing model")
	}
	if _, err := p.Generate(context.Background(), &providers.GenerationRequest{Model: "m"}); err == nil {
		t.Error("Expected error for missing prompt")
	}
}
