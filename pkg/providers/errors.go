package providers

import (
	"errors"
	"fmt"
	"time"
)

// ProviderError represents a general provider error.
// It includes the provider name, HTTP status code, and underlying error.
type ProviderError struct {
	// Provider is the name of the provider that returned the error
	Provider string

	// StatusCode is the HTTP status code (0 if not applicable)
	StatusCode int

	// Message is the error message
	Message string

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %q error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %q error: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// AuthError represents an authentication failure.
// This occurs when the provider rejects the API key (HTTP 401 or 403).
// Authentication errors are never retried.
type AuthError struct {
	// Provider is the name of the provider that rejected authentication
	Provider string

	// StatusCode is 401 or 403
	StatusCode int

	// Message is the error message from the provider
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("provider %q authentication failed (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// NotFoundError represents an unknown endpoint or model (HTTP 404),
// typically a wrong base URL or a model identifier the provider does not
// serve. Never retried.
type NotFoundError struct {
	// Provider is the name of the provider
	Provider string

	// URL is the request URL that returned 404
	URL string

	// Message is the error message from the provider
	Message string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("provider %q returned 404 for %s: %s", e.Provider, e.URL, e.Message)
}

// RateLimitError represents a rate limit exceeded error (HTTP 429).
// It includes the retry-after duration if provided by the provider.
// The HTTP layer retries these; a RateLimitError surfacing to the caller
// means the retry budget is exhausted and the run should back off.
type RateLimitError struct {
	// Provider is the name of the provider that rate limited the request
	Provider string

	// RetryAfter is the duration to wait before retrying (if provided)
	RetryAfter time.Duration

	// Message is the error message from the provider
	Message string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("provider %q rate limit exceeded (retry after %s): %s",
			e.Provider, e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("provider %q rate limit exceeded: %s", e.Provider, e.Message)
}

// TimeoutError represents a request timeout.
type TimeoutError struct {
	// Provider is the name of the provider where the timeout occurred
	Provider string

	// Timeout is the configured timeout duration
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider %q request timeout after %s", e.Provider, e.Timeout)
}

// ParseError represents a response normalization failure: the provider
// returned a body in none of the shapes the adapter knows. The raw body is
// carried so the caller can persist it for inspection instead of silently
// stringifying it into output.
type ParseError struct {
	// Provider is the name of the provider that returned the response
	Provider string

	// RawResponse is the raw response body that failed to normalize
	RawResponse string

	// Cause is the underlying parse error (if any)
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %q response parse error: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("provider %q returned a response in no known shape", e.Provider)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ConfigError represents a provider configuration error.
type ConfigError struct {
	// Provider is the name of the provider with invalid configuration
	Provider string

	// Field is the configuration field that is invalid
	Field string

	// Message describes the configuration error
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider %q configuration error for field %q: %s",
		e.Provider, e.Field, e.Message)
}

// IsFatal reports whether an error should not be retried at any layer:
// authentication failures, unknown endpoints/models, and configuration
// errors. Everything else is a per-item failure that a later run may
// succeed on.
func IsFatal(err error) bool {
	var authErr *AuthError
	var notFound *NotFoundError
	var cfgErr *ConfigError
	return errors.As(err, &authErr) || errors.As(err, &notFound) || errors.As(err, &cfgErr)
}

// IsQuota reports whether an error indicates an exhausted quota or rate
// limit. The polishing run stops after a quota-class error instead of
// burning the remaining daily budget on failures.
func IsQuota(err error) bool {
	var rateErr *RateLimitError
	return errors.As(err, &rateErr)
}
