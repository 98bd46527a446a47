package openai

import (
	"context"
	"fmt"
	"log/slog"

	"polyglotpress/lexicon/pkg/providers"
)

// Provider is the OpenAI provider adapter.
// It implements the providers.Provider interface for OpenAI's chat
// completions API.
type Provider struct {
	*providers.HTTPProvider
}

// NewProvider creates a new OpenAI provider instance.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "openai",
			Field:    "name",
			Message:  "provider name is required",
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1"
	}

	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for OpenAI",
		}
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(config),
	}

	slog.Info("OpenAI provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
	)

	return p, nil
}

// Generate sends a generation request to OpenAI's chat completions endpoint
// and normalizes the response.
func (p *Provider) Generate(ctx context.Context, req *providers.GenerationRequest) (*providers.GenerationResponse, error) {
	if err := validateRequest(p.GetName(), req); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/chat/completions", p.GetConfig().BaseURL)
	headers := map[string]string{
		"Authorization": "Bearer " + p.GetConfig().APIKey,
		"Content-Type":  "application/json",
	}

	var chatResp chatResponse
	if err := p.DoJSONRequest(ctx, "POST", url, transformRequest(req), &chatResp, headers); err != nil {
		return nil, err
	}

	resp, err := transformResponse(p.GetName(), &chatResp)
	if err != nil {
		return nil, err
	}

	slog.Debug("generation request succeeded",
		"provider", p.GetName(),
		"model", resp.Model,
		"tokens", resp.Usage.TotalTokens,
	)

	return resp, nil
}

// validateRequest validates the generation request.
func validateRequest(provider string, req *providers.GenerationRequest) error {
	if req == nil {
		return &providers.ConfigError{
			Provider: provider,
			Field:    "request",
			Message:  "request cannot be nil",
		}
	}
	if req.Model == "" {
		return &providers.ConfigError{
			Provider: provider,
			Field:    "model",
			Message:  "model is required",
		}
	}
	if req.Prompt == "" {
		return &providers.ConfigError{
			Provider: provider,
			Field:    "prompt",
			Message:  "prompt is required",
		}
	}
	return nil
}
