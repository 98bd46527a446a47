// Package openai implements the OpenAI provider adapter.
//
// This package provides an implementation of the providers.Provider interface
// for OpenAI's chat completions API. The master context is sent as a
// system-role message and the prompt as a user-role message; the first
// choice's message content becomes the normalized response.
//
// # Basic Usage
//
//	config := providers.ProviderConfig{
//	    Name:   "openai",
//	    Type:   "openai",
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	}
//
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	resp, err := provider.Generate(ctx, &providers.GenerationRequest{
//	    Model:  "gpt-4o-mini",
//	    System: masterPrompt,
//	    Prompt: chapterPrompt,
//	})
//
// The adapter also serves any OpenAI-compatible endpoint via a custom
// BaseURL; see the generic package for that use.
package openai
