package huggingface

import (
	"encoding/json"

	"polyglotpress/lexicon/pkg/providers"
)

// generationRequest represents a Hugging Face Inference API request.
type generationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
}

// generationParameters holds the sampling parameters.
type generationParameters struct {
	Temperature    float64 `json:"temperature,omitempty"`
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

// transformRequest transforms a provider-agnostic request to Hugging Face
// format. The Inference API takes a single text input, so the system context
// is folded into the prompt.
func transformRequest(req *providers.GenerationRequest) *generationRequest {
	inputs := req.Prompt
	if req.System != "" {
		inputs = req.System + "\n\n" + req.Prompt
	}

	return &generationRequest{
		Inputs: inputs,
		Parameters: generationParameters{
			Temperature:    req.Temperature,
			MaxNewTokens:   req.MaxTokens,
			ReturnFullText: false,
		},
	}
}

// textKeys are the field names hosted models use for the generated text,
// in priority order.
var textKeys = []string{"generated_text", "text", "content"}

// normalizeResponse extracts the generated text from a Hugging Face response.
// Hosted models return one of several shapes:
//
//   - a list of objects: [{"generated_text": "..."}]
//   - a flat object: {"generated_text": "..."} (or "text" / "content")
//   - an object with a results list: {"results": [{"text": "..."}]}
//
// Anything else is a *providers.ParseError carrying the raw body.
func normalizeResponse(provider string, raw json.RawMessage) (string, error) {
	parseErr := &providers.ParseError{
		Provider:    provider,
		RawResponse: string(raw),
	}

	var list []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", parseErr
		}
		if text, ok := extractText(list[0]); ok {
			return text, nil
		}
		return "", parseErr
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", parseErr
	}

	if text, ok := extractText(obj); ok {
		return text, nil
	}

	if results, ok := obj["results"]; ok {
		var resultList []map[string]json.RawMessage
		if err := json.Unmarshal(results, &resultList); err == nil && len(resultList) > 0 {
			if text, ok := extractText(resultList[0]); ok {
				return text, nil
			}
		}
	}

	return "", parseErr
}

// extractText looks up the first known text field holding a string value.
func extractText(obj map[string]json.RawMessage) (string, bool) {
	for _, key := range textKeys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		var text string
		if err := json.Unmarshal(value, &text); err == nil {
			return text, true
		}
	}
	return "", false
}
