package providers

import "time"

// GenerationRequest represents a provider-agnostic text-generation request.
// It is transformed to provider-specific wire formats by each adapter.
type GenerationRequest struct {
	// Model is the model identifier (e.g., "gpt-4o-mini", "gemini-2.5-flash").
	Model string `json:"model"`

	// System is the system/master context prepended to the request.
	// Adapters for prompt-style APIs fold it into the prompt text.
	System string `json:"system,omitempty"`

	// Prompt is the user prompt text.
	Prompt string `json:"prompt"`

	// Temperature controls sampling randomness (0.0 to 2.0).
	Temperature float64 `json:"temperature,omitempty"`

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Metadata contains additional request context (language, slug, run id).
	// It is not sent to the provider.
	Metadata map[string]string `json:"-"`
}

// GenerationResponse represents a normalized text-generation response.
type GenerationResponse struct {
	// Content is the extracted plain-text content.
	Content string `json:"content"`

	// Model is the model that generated the response, when reported.
	Model string `json:"model,omitempty"`

	// Usage contains token consumption, when reported by the provider.
	Usage TokenUsage `json:"usage"`

	// Created is the Unix timestamp when the response was created,
	// when reported.
	Created int64 `json:"created,omitempty"`
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens used.
	TotalTokens int `json:"total_tokens"`
}

// ProviderStats holds request counters for a provider instance.
type ProviderStats struct {
	// TotalRequests is the total number of requests attempted.
	TotalRequests int64

	// FailedRequests is the total number of failed requests.
	FailedRequests int64

	// Retries is the total number of retry attempts performed.
	Retries int64

	// LastSuccess is the timestamp of the last successful request.
	LastSuccess time.Time
}

// ProviderConfig contains configuration for a single provider instance.
// This is a subset of config.ProviderConfig with only the fields needed by
// adapters.
type ProviderConfig struct {
	// Name is the provider identifier (e.g., "openai", "gemini").
	Name string

	// Type is the adapter type (openai, huggingface, groq, gemini, generic, mock).
	Type string

	// BaseURL is the API endpoint base URL.
	BaseURL string

	// APIKey is the bearer authentication token.
	APIKey string

	// Timeout is the per-request timeout duration.
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int

	// InitialBackoff is the first retry delay. Each subsequent delay
	// doubles, with jitter of up to one base delay added.
	InitialBackoff time.Duration

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool.
	IdleConnTimeout time.Duration

	// MockSamplePath is an optional static file returned by the mock
	// adapter instead of the built-in template.
	MockSamplePath string
}
