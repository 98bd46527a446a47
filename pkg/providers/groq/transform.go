package groq

import (
	"encoding/json"

	"polyglotpress/lexicon/pkg/providers"
)

// chatRequest represents a Groq chat completions request
// (OpenAI-compatible wire format).
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatMessage represents a message in chat format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// transformRequest transforms a provider-agnostic request to Groq format.
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

// normalizeResponse extracts the generated text from a Groq response.
// Known shapes, in priority order:
//
//   - {"text": "..."}
//   - {"output": "..."}
//   - {"choices": [{"message": {"content": "..."}}]}
//   - {"choices": [{"text": "..."}]}
//
// Anything else is a *providers.ParseError carrying the raw body.
func normalizeResponse(provider string, raw json.RawMessage) (string, error) {
	parseErr := &providers.ParseError{
		Provider:    provider,
		RawResponse: string(raw),
	}

	var obj struct {
		Text    string `json:"text"`
		Output  string `json:"output"`
		Choices []struct {
			Text    string `json:"text"`
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", parseErr
	}

	switch {
	case obj.Text != "":
		return obj.Text, nil
	case obj.Output != "":
		return obj.Output, nil
	case len(obj.Choices) > 0 && obj.Choices[0].Message.Content != "":
		return obj.Choices[0].Message.Content, nil
	case len(obj.Choices) > 0 && obj.Choices[0].Text != "":
		return obj.Choices[0].Text, nil
	}

	return "", parseErr
}
