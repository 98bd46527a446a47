package providerfactory

import (
	"fmt"
	"log/slog"

	"polyglotpress/lexicon/pkg/providers"
	"polyglotpress/lexicon/pkg/providers/gemini"
	"polyglotpress/lexicon/pkg/providers/generic"
	"polyglotpress/lexicon/pkg/providers/groq"
	"polyglotpress/lexicon/pkg/providers/huggingface"
	"polyglotpress/lexicon/pkg/providers/openai"
)

// NewProvider creates a new provider instance based on the configuration.
// It automatically detects the provider type and creates the appropriate adapter.
//
// Supported provider types:
//   - "openai": OpenAI chat completions API
//   - "huggingface": Hugging Face Inference API
//   - "groq": Groq chat completions API
//   - "gemini": Google Gemini generateContent API
//   - "generic": OpenAI-compatible APIs (Ollama, LM Studio, vLLM, etc.)
//   - "mock": deterministic offline provider for dry runs
//
// The provider type is determined from the config.Type field. If not
// specified, it is inferred from the provider name, defaulting to generic.
//
// Example:
//
//	config := providers.ProviderConfig{
//	    Name:   "openai",
//	    Type:   "openai",
//	    APIKey: "sk-...",
//	}
//	provider, err := providerfactory.NewProvider(config)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
func NewProvider(config providers.ProviderConfig) (providers.Provider, error) {
	providerType := config.Type
	if providerType == "" {
		providerType = inferProviderType(config.Name)
		config.Type = providerType
	}

	slog.Debug("creating provider",
		"name", config.Name,
		"type", providerType,
		"base_url", config.BaseURL,
	)

	var provider providers.Provider
	var err error

	switch providerType {
	case "openai":
		provider, err = openai.NewProvider(config)

	case "huggingface":
		provider, err = huggingface.NewProvider(config)

	case "groq":
		provider, err = groq.NewProvider(config)

	case "gemini":
		provider, err = gemini.NewProvider(config)

	case "generic":
		provider, err = generic.NewProvider(config)

	case "mock":
		provider = providers.NewMockProvider(config)

	default:
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "type",
			Message:  fmt.Sprintf("unsupported provider type: %q (supported: openai, huggingface, groq, gemini, generic, mock)", providerType),
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create provider %q: %w", config.Name, err)
	}

	slog.Info("provider created successfully",
		"name", config.Name,
		"type", providerType,
	)

	return provider, nil
}

// inferProviderType infers the provider type from the provider name.
func inferProviderType(name string) string {
	switch name {
	case "openai":
		return "openai"
	case "huggingface", "hf":
		return "huggingface"
	case "groq":
		return "groq"
	case "gemini", "google":
		return "gemini"
	case "mock":
		return "mock"
	default:
		return "generic"
	}
}
