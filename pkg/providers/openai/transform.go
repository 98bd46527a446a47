package openai

import (
	"encoding/json"

	"polyglotpress/lexicon/pkg/providers"
)

// OpenAI chat completions request/response types

// chatRequest represents an OpenAI chat completions request.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatMessage represents a message in OpenAI chat format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse represents an OpenAI chat completions response.
type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Created int64        `json:"created"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

// chatChoice represents a single completion choice.
type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// chatUsage represents token usage in OpenAI format.
type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// transformRequest transforms a provider-agnostic request to OpenAI format.
// The system context becomes a system-role message ahead of the user prompt.
func transformRequest(req *providers.GenerationRequest) *chatRequest {
	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	return &chatRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
}

// transformResponse transforms an OpenAI response to provider-agnostic format.
func transformResponse(provider string, resp *chatResponse) (*providers.GenerationResponse, error) {
	if len(resp.Choices) == 0 {
		raw, _ := json.Marshal(resp)
		return nil, &providers.ParseError{
			Provider:    provider,
			RawResponse: string(raw),
		}
	}

	return &providers.GenerationResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Created: resp.Created,
		Usage: providers.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
