package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"polyglotpress/lexicon/pkg/providers"
)

// Provider is the Hugging Face Inference API provider adapter.
// It implements the providers.Provider interface for hosted text-generation
// models.
type Provider struct {
	*providers.HTTPProvider
}

// NewProvider creates a new Hugging Face provider instance.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "huggingface",
			Field:    "name",
			Message:  "provider name is required",
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = "https://api-inference.huggingface.co"
	}

	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for Hugging Face",
		}
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(config),
	}

	slog.Info("Hugging Face provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
	)

	return p, nil
}

// Generate sends a text-generation request to the Hugging Face Inference API
// and normalizes whichever response shape the hosted model returns.
func (p *Provider) Generate(ctx context.Context, req *providers.GenerationRequest) (*providers.GenerationResponse, error) {
	if req == nil || req.Model == "" || req.Prompt == "" {
		return nil, &providers.ConfigError{
			Provider: p.GetName(),
			Field:    "request",
			Message:  "model and prompt are required",
		}
	}

	url := fmt.Sprintf("%s/models/%s", p.GetConfig().BaseURL, req.Model)
	headers := map[string]string{
		"Authorization": "Bearer " + p.GetConfig().APIKey,
		"Content-Type":  "application/json",
	}

	// Different hosted models return different JSON shapes, so the body is
	// decoded generically and normalized afterwards.
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
