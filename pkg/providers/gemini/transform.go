package gemini

import (
	"encoding/json"
	"strings"

	"polyglotpress/lexicon/pkg/providers"
)

// Gemini generateContent request/response types

// generateRequest represents a Gemini generateContent request.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

// content represents a content block in Gemini format.
type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

// part represents a single part of a content block.
type part struct {
	Text string `json:"text"`
}

// generationConfig holds the sampling parameters.
type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// generateResponse represents a Gemini generateContent response.
type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`

	// Output is a legacy top-level field some API revisions returned.
	Output string `json:"output"`

	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// transformRequest transforms a provider-agnostic request to Gemini format.
// The generateContent API takes role-tagged content blocks, so the system
// context is folded into the user content.
func transformRequest(req *providers.GenerationRequest) *generateRequest {
	text := req.Prompt
	if req.System != "" {
		text = req.System + "\n\n" + req.Prompt
	}

	out := &generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: text}}},
		},
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		out.GenerationConfig = &generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}
	return out
}

// normalizeResponse extracts the generated text from a Gemini response.
// The primary shape is candidates[0].content.parts[].text with all text
// parts concatenated; a top-level output field is accepted as a fallback.
// Anything else is a *providers.ParseError carrying the raw body.
func normalizeResponse(provider string, raw json.RawMessage) (string, providers.TokenUsage, error) {
	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", providers.TokenUsage{}, &providers.ParseError{
			Provider:    provider,
			RawResponse: string(raw),
			Cause:       err,
		}
	}

	usage := providers.TokenUsage{
		PromptTokens:     resp.UsageMetadata.PromptTokenCount,
		CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
		TotalTokens:      resp.UsageMetadata.TotalTokenCount,
	}

	if len(resp.Candidates) > 0 {
		var sb strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			return sb.String(), usage, nil
		}
	}

	if resp.Output != "" {
		return resp.Output, usage, nil
	}

	return "", providers.TokenUsage{}, &providers.ParseError{
		Provider:    provider,
		RawResponse: string(raw),
	}
}
