package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation failure for a
// specific field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration for consistency. It is called by
// LoadConfig after defaults are applied, and again after environment
// overrides.
func Validate(cfg *Config) error {
	if err := validateGenerator(cfg); err != nil {
		return err
	}
	if err := validateProviders(cfg); err != nil {
		return err
	}
	if err := validateQueue(cfg); err != nil {
		return err
	}
	if err := validateDraft(cfg); err != nil {
		return err
	}
	if err := validatePolish(cfg); err != nil {
		return err
	}
	if err := validateTelemetry(cfg); err != nil {
		return err
	}
	return nil
}

func validateGenerator(cfg *Config) error {
	if cfg.Generator.Temperature < 0 || cfg.Generator.Temperature > 2 {
		return &ValidationError{
			Field:   "generator.temperature",
			Message: fmt.Sprintf("must be between 0 and 2, got %g", cfg.Generator.Temperature),
		}
	}
	if cfg.Generator.MaxTokens < 0 {
		return &ValidationError{
			Field:   "generator.max_tokens",
			Message: "must not be negative",
		}
	}
	// Mock mode requires no provider entry; anything else must resolve.
	if !cfg.Generator.MockMode && cfg.Generator.Provider != "mock" {
		if _, ok := cfg.Providers[cfg.Generator.Provider]; !ok {
			return &ValidationError{
				Field:   "generator.provider",
				Message: fmt.Sprintf("provider %q is not configured under providers", cfg.Generator.Provider),
			}
		}
	}
	return nil
}

func validateProviders(cfg *Config) error {
	for name, provider := range cfg.Providers {
		field := "providers." + name

		switch provider.Type {
		case "openai", "huggingface", "groq", "gemini", "generic", "mock":
		default:
			return &ValidationError{
				Field:   field + ".type",
				Message: fmt.Sprintf("unsupported type %q (supported: openai, huggingface, groq, gemini, generic, mock)", provider.Type),
			}
		}

		if provider.Type != "mock" {
			if provider.BaseURL == "" {
				return &ValidationError{
					Field:   field + ".base_url",
					Message: "base URL is required",
				}
			}
			u, err := url.Parse(provider.BaseURL)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return &ValidationError{
					Field:   field + ".base_url",
					Message: fmt.Sprintf("not a valid URL: %q", provider.BaseURL),
				}
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return &ValidationError{
					Field:   field + ".base_url",
					Message: fmt.Sprintf("scheme must be http or https, got %q", u.Scheme),
				}
			}
		}

		if provider.Timeout < 0 {
			return &ValidationError{
				Field:   field + ".timeout",
				Message: "must not be negative",
			}
		}
		if provider.MaxRetries < 0 {
			return &ValidationError{
				Field:   field + ".max_retries",
				Message: "must not be negative",
			}
		}
		if provider.InitialBackoff < 0 {
			return &ValidationError{
				Field:   field + ".initial_backoff",
				Message: "must not be negative",
			}
		}
	}
	return nil
}

func validateQueue(cfg *Config) error {
	if strings.TrimSpace(cfg.Queue.LanguagesPath) == "" {
		return &ValidationError{
			Field:   "queue.languages_path",
			Message: "must not be empty",
		}
	}
	if strings.TrimSpace(cfg.Queue.CompletedLogPath) == "" {
		return &ValidationError{
			Field:   "queue.completed_log_path",
			Message: "must not be empty",
		}
	}
	if cfg.Queue.MaxSmallPerRun < 1 {
		return &ValidationError{
			Field:   "queue.max_small_per_run",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Queue.MaxSmallPerRun),
		}
	}
	return nil
}

func validateDraft(cfg *Config) error {
	if cfg.Draft.Parallelism < 1 {
		return &ValidationError{
			Field:   "draft.parallelism",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Draft.Parallelism),
		}
	}
	return nil
}

func validatePolish(cfg *Config) error {
	if cfg.Polish.BatchSize < 1 {
		return &ValidationError{
			Field:   "polish.batch_size",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Polish.BatchSize),
		}
	}
	if cfg.Polish.RequestsPerDay < 0 {
		return &ValidationError{
			Field:   "polish.requests_per_day",
			Message: "must not be negative",
		}
	}
	if cfg.Polish.Limits.RequestsPerDay < 1 {
		return &ValidationError{
			Field:   "polish.limits.requests_per_day",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Polish.Limits.RequestsPerDay),
		}
	}
	if cfg.Polish.Limits.RequestsPerMinute < 1 {
		return &ValidationError{
			Field:   "polish.limits.requests_per_minute",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Polish.Limits.RequestsPerMinute),
		}
	}
	if cfg.Polish.Limits.TokensPerMinute < 1 {
		return &ValidationError{
			Field:   "polish.limits.tokens_per_minute",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Polish.Limits.TokensPerMinute),
		}
	}
	return nil
}

func validateTelemetry(cfg *Config) error {
	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Telemetry.Logging.Level),
		}
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return &ValidationError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be json or text; got %q", cfg.Telemetry.Logging.Format),
		}
	}
	return nil
}
