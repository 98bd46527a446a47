package providers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// MockProvider is an offline provider for dry runs and tests. It returns
// deterministic Markdown without any network access, so a full pipeline run
// can be rehearsed without spending quota. Runs against the mock never count
// as real completions.
type MockProvider struct {
	config ProviderConfig

	stats   ProviderStats
	statsMu sync.Mutex
}

// NewMockProvider creates a mock provider. If config.MockSamplePath is set,
// the file's contents are returned verbatim for every request; otherwise a
// small built-in template is rendered from the request metadata.
func NewMockProvider(config ProviderConfig) *MockProvider {
	if config.Name == "" {
		config.Name = "mock"
	}
	config.Type = "mock"
	return &MockProvider{config: config}
}

// Generate returns deterministic content for the request.
func (p *MockProvider) Generate(ctx context.Context, req *GenerationRequest) (*GenerationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := p.render(req)
	if err != nil {
		p.recordRequest(false)
		return nil, err
	}
	p.recordRequest(true)

	return &GenerationResponse{
		Content: content,
		Model:   req.Model,
		Usage: TokenUsage{
			PromptTokens:     len(strings.Fields(req.Prompt)),
			CompletionTokens: len(strings.Fields(content)),
			TotalTokens:      len(strings.Fields(req.Prompt)) + len(strings.Fields(content)),
		},
		Created: time.Now().Unix(),
	}, nil
}

func (p *MockProvider) render(req *GenerationRequest) (string, error) {
	if p.config.MockSamplePath != "" {
		data, err := os.ReadFile(p.config.MockSamplePath)
		if err != nil {
			return "", &ConfigError{
				Provider: p.config.Name,
				Field:    "mock_sample_path",
				Message:  err.Error(),
			}
		}
		return string(data), nil
	}

	language := req.Metadata["language"]
	if language == "" {
		language = "Unknown"
	}
	title := req.Metadata["title"]
	if title == "" {
		title = language + " Overview"
	}

	return fmt.Sprintf("# %s\n\nThis is mock content for the %s chapter of the %s encyclopedia.\n\n```\nprint(\"hello from %s\")\n```\n",
		title, title, language, language), nil
}

// GetName returns the provider's configured name.
func (p *MockProvider) GetName() string {
	return p.config.Name
}

// GetType returns "mock".
func (p *MockProvider) GetType() string {
	return "mock"
}

// GetConfig returns the provider's configuration.
func (p *MockProvider) GetConfig() ProviderConfig {
	return p.config
}

// GetStats returns request counters for this provider instance.
func (p *MockProvider) GetStats() ProviderStats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

func (p *MockProvider) recordRequest(success bool) {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	p.stats.TotalRequests++
	if success {
		p.stats.LastSuccess = time.Now()
	} else {
		p.stats.FailedRequests++
	}
}

// Close is a no-op for the mock provider.
func (p *MockProvider) Close() error {
	return nil
}
