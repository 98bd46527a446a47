package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"polyglotpress/lexicon/pkg/providers"
)

// Provider is the Groq provider adapter.
// Groq serves an OpenAI-compatible chat completions endpoint, but response
// shapes have drifted across API revisions, so the adapter normalizes
// defensively instead of binding to a single struct.
type Provider struct {
	*providers.HTTPProvider
}

// NewProvider creates a new Groq provider instance.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "groq",
			Field:    "name",
			Message:  "provider name is required",
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = "https://api.groq.com/openai/v1"
	}

	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for Groq",
		}
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(config),
	}

	slog.Info("Groq provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
	)

	return p, nil
}

// Generate sends a generation request to Groq and normalizes the response.
func (p *Provider) Generate(ctx context.Context, req *providers.GenerationRequest) (*providers.GenerationResponse, error) {
	if req == nil || req.Model == "" || req.Prompt == "" {
		return nil, &providers.ConfigError{
			Provider: p.GetName(),
			Field:    "request",
			Message:  "model and prompt are required",
		}
	}

	url := fmt.Sprintf("%s/chat/completions", p.GetConfig().BaseURL)
	headers := map[string]string{
		"Authorization": "Bearer " + p.GetConfig().APIKey,
		"Content-Type":  "application/json",
	}

	var raw json.RawMessage
	if err := p.DoJSONRequest(ctx, "POST", url, transformRequest(req), &raw, headers); err != nil {
		return nil, err
	}

	content, err := normalizeResponse(p.GetName(), raw)
	if err != nil {
		return nil, err
	}

	slog.Debug("generation request succeeded",
		"provider", p.GetName(),
		"model", req.Model,
	)

	return &providers.GenerationResponse{
		Content: content,
		Model:   req.Model,
	}, nil
}
