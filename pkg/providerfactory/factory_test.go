package providerfactory

import (
	"errors"
	"testing"

	"polyglotpress/lexicon/pkg/providers"
)

func TestNewProvider_Types(t *testing.T) {
	tests := []struct {
		name     string
		config   providers.ProviderConfig
		wantType string
	}{
		{
			name:     "openai",
			config:   providers.ProviderConfig{Name: "openai", Type: "openai", APIKey: "k"},
			wantType: "openai",
		},
		{
			name:     "huggingface",
			config:   providers.ProviderConfig{Name: "huggingface", Type: "huggingface", APIKey: "k"},
			wantType: "huggingface",
		},
		{
			name:     "groq",
			config:   providers.ProviderConfig{Name: "groq", Type: "groq", APIKey: "k"},
			wantType: "groq",
		},
		{
			name:     "gemini",
			config:   providers.ProviderConfig{Name: "gemini", Type: "gemini", APIKey: "k"},
			wantType: "gemini",
		},
		{
			name:     "generic",
			config:   providers.ProviderConfig{Name: "ollama", Type: "generic", BaseURL: "http://localhost:11434/v1"},
			wantType: "generic",
		},
		{
			name:     "mock",
			config:   providers.ProviderConfig{Name: "mock", Type: "mock"},
			wantType: "mock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			defer p.Close()

			if got := p.GetType(); got != tt.wantType {
				t.Errorf("Expected type %q, got %q", tt.wantType, got)
			}
		})
	}
}

func TestNewProvider_InfersTypeFromName(t *testing.T) {
	p, err := NewProvider(providers.ProviderConfig{Name: "gemini", APIKey: "k"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	defer p.Close()

	if got := p.GetType(); got != "gemini" {
		t.Errorf("Expected inferred type gemini, got %q", got)
	}
}

func TestNewProvider_UnsupportedType(t *testing.T) {
	_, err := NewProvider(providers.ProviderConfig{Name: "x", Type: "carrier-pigeon"})
	var cfgErr *providers.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigError, got %T: %v", err, err)
	}
}

func TestNewProvider_PropagatesAdapterErrors(t *testing.T) {
	_, err := NewProvider(providers.ProviderConfig{Name: "openai", Type: "openai"})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	var cfgErr *providers.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected wrapped ConfigError, got %T: %v", err, err)
	}
}
