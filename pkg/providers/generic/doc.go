// Package generic implements a generic OpenAI-compatible provider adapter.
//
// It reuses the openai adapter's wire format with a custom base URL and an
// optional API key, which covers local LLM servers (Ollama, LM Studio,
// vLLM) and self-hosted OpenAI-compatible endpoints.
//
//	config := providers.ProviderConfig{
//	    Name:    "ollama",
//	    Type:    "generic",
//	    BaseURL: "http://localhost:11434/v1",
//	}
//	provider, err := generic.NewProvider(config)
package generic
