package logging

import "regexp"

// Redactor masks credentials in log attribute values.
type Redactor struct {
	patterns []redactPattern
}

type redactPattern struct {
	regex       *regexp.Regexp
	replacement string
}

// NewRedactor creates a redactor with the built-in credential patterns:
// provider API keys (sk-, gsk_, hf_ prefixes and api_key fields) and bearer
// tokens in header dumps.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []redactPattern{
			{
				regex:       regexp.MustCompile(`(sk-[a-zA-Z0-9_-]+|gsk_[a-zA-Z0-9_-]+|hf_[a-zA-Z0-9]+)`),
				replacement: "***",
			},
			{
				regex:       regexp.MustCompile(`(?i)(api[-_]?key["':=\s]+)[a-zA-Z0-9_-]+`),
				replacement: "$1***",
			},
			{
				regex:       regexp.MustCompile(`Bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
				replacement: "Bearer ***",
			},
		},
	}
}

// Redact masks all credential matches in the value.
func (r *Redactor) Redact(value string) string {
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}
