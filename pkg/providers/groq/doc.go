// Package groq implements the Groq provider adapter.
//
// Groq exposes an OpenAI-compatible chat completions endpoint. The adapter
// sends requests in chat format and normalizes the handful of response
// shapes observed across API revisions (top-level text or output fields,
// and choices with either a message or a bare text field) to plain text.
package groq
