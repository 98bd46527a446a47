package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"polyglotpress/lexicon/pkg/providers"
)

// Provider is the Google Gemini provider adapter.
// It implements the providers.Provider interface for the generateContent API.
type Provider struct {
	*providers.HTTPProvider
}

// NewProvider creates a new Gemini provider instance.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "gemini",
			Field:    "name",
			Message:  "provider name is required",
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for Gemini",
		}
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(config),
	}

	slog.Info("Gemini provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
	)

	return p, nil
}

// Generate sends a generateContent request to Gemini and normalizes the
// response.
func (p *Provider) Generate(ctx context.Context, req *providers.GenerationRequest) (*providers.GenerationResponse, error) {
	if req == nil || req.Model == "" || req.Prompt == "" {
		return nil, &providers.ConfigError{
			Provider: p.GetName(),
			Field:    "request",
			Message:  "model and prompt are required",
		}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.GetConfig().BaseURL, req.Model)
	headers := map[string]string{
		"Authorization": "Bearer " + p.GetConfig().APIKey,
		"Content-Type":  "application/json",
	}

	var raw json.RawMessage
	if err := p.DoJSONRequest(ctx, "POST", url, transformRequest(req), &raw, headers); err != nil {
		return nil, err
	}

	content, usage, err := normalizeResponse(p.GetName(), raw)
	if err != nil {
		return nil, err
	}

	slog.Debug("generation request succeeded",
		"provider", p.GetName(),
		"model", req.Model,
		"tokens", usage.TotalTokens,
	)

	return &providers.GenerationResponse{
		Content: content,
		Model:   req.Model,
		Usage:   usage,
	}, nil
}
