package providers

import "context"

// Provider is the core interface that all generation provider adapters
// implement. It gives the pipeline a unified abstraction over the different
// text-generation APIs (OpenAI, Hugging Face, Groq, Gemini, OpenAI-compatible
// endpoints, and the offline mock).
//
// All methods accept a context.Context for cancellation and timeout control.
// Implementations must respect context cancellation and return promptly when
// the context is cancelled.
//
// Example usage:
//
//	provider, err := providerfactory.NewProvider(config)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
//	req := &providers.GenerationRequest{
//	    Model:  "gpt-4o-mini",
//	    System: masterPrompt,
//	    Prompt: builder.Book("Go"),
//	}
//	resp, err := provider.Generate(ctx, req)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(resp.Content)
type Provider interface {
	// Generate sends a generation request to the provider and returns the
	// normalized response. The request is transformed to the
	// provider-specific wire format, and the provider-specific response
	// shape is normalized to plain text content.
	//
	// Transient failures (429, 5xx, timeouts, connection errors) are
	// retried with exponential backoff and jitter up to the configured
	// attempt cap. Authentication and not-found errors fail immediately.
	// An unrecognized response shape yields a *ParseError carrying the raw
	// body; it is never silently stringified.
	Generate(ctx context.Context, req *GenerationRequest) (*GenerationResponse, error)

	// GetName returns the provider's configured name (e.g., "openai").
	GetName() string

	// GetType returns the provider's adapter type
	// (openai, huggingface, groq, gemini, generic, mock).
	GetType() string

	// GetConfig returns the provider's configuration.
	GetConfig() ProviderConfig

	// GetStats returns request counters for this provider instance.
	GetStats() ProviderStats

	// Close releases any resources (idle HTTP connections, etc.).
	// After calling Close, the provider should not be used.
	Close() error
}
