package generic

import (
	"log/slog"

	"polyglotpress/lexicon/pkg/providers"
	"polyglotpress/lexicon/pkg/providers/openai"
)

// Provider is a generic OpenAI-compatible provider adapter.
// It supports any endpoint that implements the OpenAI chat completions
// format, such as Ollama, LM Studio, or vLLM, which makes it possible to
// run the pipeline against a local model.
type Provider struct {
	*openai.Provider
}

// NewProvider creates a new generic OpenAI-compatible provider instance.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "generic",
			Field:    "name",
			Message:  "provider name is required",
		}
	}

	if config.BaseURL == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "base_url",
			Message:  "base URL is required for generic provider",
		}
	}

	// Local endpoints typically run without authentication; the OpenAI
	// adapter requires a key, so fill in a placeholder.
	if config.APIKey == "" {
		config.APIKey = "not-required"
	}

	openaiProvider, err := openai.NewProvider(config)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		Provider: openaiProvider,
	}

	slog.Info("Generic OpenAI-compatible provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
	)

	return p, nil
}

// GetType returns "generic".
func (p *Provider) GetType() string {
	return "generic"
}
