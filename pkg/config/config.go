package config

import "time"

// Config is the root configuration structure for Lexicon.
// It contains all configuration sections for the generation pipeline:
// provider adapters, the language queue, output layout, the polishing
// budget, scheduling, and telemetry.
type Config struct {
	// Generator contains settings for the book/chapter generation stage,
	// including the active provider, model parameters, and mock mode.
	Generator GeneratorConfig `yaml:"generator"`

	// Providers contains configuration for all LLM provider integrations.
	// Keys are provider names (e.g., "openai", "huggingface", "groq", "gemini").
	Providers map[string]ProviderConfig `yaml:"providers"`

	// Queue contains the language list and completion log locations plus
	// the small-language grouping rules.
	Queue QueueConfig `yaml:"queue"`

	// Output contains the output filesystem layout configuration.
	Output OutputConfig `yaml:"output"`

	// Draft contains settings for the bulk drafting stage.
	Draft DraftConfig `yaml:"draft"`

	// Polish contains settings for the draft polishing stage including
	// the provider rate-limit constants used by the budget planner.
	Polish PolishConfig `yaml:"polish"`

	// Schedule contains settings for daemon mode (cron expressions,
	// drafts watching, metrics listener).
	Schedule ScheduleConfig `yaml:"schedule"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GeneratorConfig contains settings for the generation stage.
type GeneratorConfig struct {
	// Provider is the name of the provider used for book and chapter
	// generation. Must be a key of Config.Providers unless MockMode is set.
	// Default: "openai"
	Provider string `yaml:"provider"`

	// Model is the default model identifier sent to the provider.
	// Default: "gpt-4o-mini"
	Model string `yaml:"model"`

	// Temperature controls sampling randomness.
	// Default: 0.7
	Temperature float64 `yaml:"temperature"`

	// MaxTokens is the maximum number of tokens requested per generation.
	// Default: 6000
	MaxTokens int `yaml:"max_tokens"`

	// MasterPromptPath is the path to the master prompt file that is
	// prepended as system context to every generation request.
	// Default: "prompts/master_prompt.txt"
	MasterPromptPath string `yaml:"master_prompt_path"`

	// MockMode fabricates deterministic output instead of calling a
	// remote API. Completions are never recorded in mock mode.
	// Default: false
	MockMode bool `yaml:"mock_mode"`

	// MockSamplePath is an optional static file returned verbatim in
	// mock mode instead of the built-in mock template.
	MockSamplePath string `yaml:"mock_sample_path"`

	// ForceLanguage bypasses queue selection and generates only the
	// named language. The language does not need to be in the list.
	ForceLanguage string `yaml:"force_language"`
}

// ProviderConfig contains configuration for a single LLM provider.
type ProviderConfig struct {
	// Type is the adapter type (openai, huggingface, groq, gemini, generic).
	// If empty, it is inferred from the provider name.
	Type string `yaml:"type"`

	// BaseURL is the base URL for the provider's API endpoint.
	// Example: "https://api.openai.com/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey is the bearer token for the provider. This should typically
	// be supplied through an environment variable override.
	APIKey string `yaml:"api_key"`

	// Timeout is the per-request timeout for this provider.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the maximum number of retry attempts for transient
	// failures (429, 5xx, timeouts, connection errors).
	// Default: 5
	MaxRetries int `yaml:"max_retries"`

	// InitialBackoff is the first retry delay; subsequent delays double,
	// with jitter added on top.
	// Default: 2s
	InitialBackoff time.Duration `yaml:"initial_backoff"`

	// MaxIdleConns is the maximum number of idle connections in the pool.
	// Default: 10
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost is the maximum idle connections per host.
	// Default: 5
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long an idle connection remains in the pool.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// QueueConfig contains language queue and completion log configuration.
type QueueConfig struct {
	// LanguagesPath is the newline-delimited language list. Lines starting
	// with '#' and blank lines are skipped.
	// Default: "languages.txt"
	LanguagesPath string `yaml:"languages_path"`

	// CompletedLogPath is the append-only completion log.
	// Default: "completed_languages.txt"
	CompletedLogPath string `yaml:"completed_log_path"`

	// SmallLanguages lists languages that may be grouped two-at-a-time to
	// amortize run overhead.
	SmallLanguages []string `yaml:"small_languages"`

	// MaxSmallPerRun caps the size of a small-language group.
	// Default: 2
	MaxSmallPerRun int `yaml:"max_small_per_run"`
}

// OutputConfig contains the output filesystem layout configuration.
type OutputConfig struct {
	// Dir is the root output directory. The pipeline writes
	// <Dir>/<Language>/book.md, <Dir>/<Language>/chapters/<slug>.md,
	// <Dir>/<Language>/drafts/<slug>.md (+ drafts/meta/<slug>.json),
	// <Dir>/<Language>/final/<slug>.md and <Dir>/errors/*.json.
	// Default: "output"
	Dir string `yaml:"dir"`
}

// DraftConfig contains settings for the bulk drafting stage.
type DraftConfig struct {
	// Provider is the provider used for bulk drafting.
	// Default: "groq"
	Provider string `yaml:"provider"`

	// Model is the model used for drafting.
	// Default: "mixtral-8x7b"
	Model string `yaml:"model"`

	// Temperature controls sampling randomness for drafts.
	// Default: 0.7
	Temperature float64 `yaml:"temperature"`

	// MaxTokens is the per-draft token cap.
	// Default: 5000
	MaxTokens int `yaml:"max_tokens"`

	// Parallelism is the fixed worker pool size for drafting runs.
	// Default: 4
	Parallelism int `yaml:"parallelism"`
}

// PolishConfig contains settings for the polishing stage.
type PolishConfig struct {
	// Provider is the provider used for polishing drafts.
	// Default: "gemini"
	Provider string `yaml:"provider"`

	// Model is the model used for polishing.
	// Default: "gemini-2.5-flash"
	Model string `yaml:"model"`

	// Temperature controls sampling randomness for polishing.
	// Default: 0.65
	Temperature float64 `yaml:"temperature"`

	// MaxTokens is the per-request output token cap.
	// Default: 3000
	MaxTokens int `yaml:"max_tokens"`

	// BatchSize is the number of drafts combined into one polish request.
	// Default: 1
	BatchSize int `yaml:"batch_size"`

	// RequestsPerDay overrides the computed daily request budget when
	// non-zero.
	RequestsPerDay int `yaml:"requests_per_day"`

	// SampleSize is the number of pending drafts sampled to estimate the
	// average tokens per item for the budget computation.
	// Default: 10
	SampleSize int `yaml:"sample_size"`

	// Limits holds the provider rate-limit constants used by the planner.
	Limits RateLimitConfig `yaml:"limits"`

	// UsageDBPath is the SQLite database recording requests sent per UTC
	// day, so that the daily budget is shared across process restarts.
	// Default: "data/usage.db"
	UsageDBPath string `yaml:"usage_db_path"`
}

// RateLimitConfig holds published provider rate-limit constants.
// The planner applies a fixed safety margin (limit - 1) to each.
type RateLimitConfig struct {
	// RequestsPerDay is the provider's daily request limit.
	// Default: 20
	RequestsPerDay int `yaml:"requests_per_day"`

	// RequestsPerMinute is the provider's per-minute request limit.
	// Default: 5
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// TokensPerMinute is the provider's per-minute token limit.
	// Default: 250000
	TokensPerMinute int `yaml:"tokens_per_minute"`
}

// ScheduleConfig contains daemon mode configuration.
type ScheduleConfig struct {
	// GenerateCron is the cron expression for scheduled generation runs.
	// Empty disables scheduled generation.
	// Default: "0 6 * * *"
	GenerateCron string `yaml:"generate_cron"`

	// PolishCron is the cron expression for scheduled polish runs.
	// Empty disables scheduled polishing.
	// Default: "0 18 * * *"
	PolishCron string `yaml:"polish_cron"`

	// WatchDrafts triggers a polish run when new drafts appear on disk,
	// debounced to avoid storms while a drafting run is writing files.
	// Default: false
	WatchDrafts bool `yaml:"watch_drafts"`

	// DebounceInterval is the quiet period required after the last drafts
	// change before a watch-triggered polish run starts.
	// Default: 30s
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// MetricsListen is the address for the Prometheus metrics listener in
	// daemon mode. Empty disables the listener.
	// Default: "127.0.0.1:9090"
	MetricsListen string `yaml:"metrics_listen"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format (json, text).
	// Default: "text"
	Format string `yaml:"format"`

	// RedactSecrets masks bearer tokens and API keys in log attributes.
	// Default: true
	RedactSecrets bool `yaml:"redact_secrets"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "lexicon"
	Namespace string `yaml:"namespace"`

	// Path is the HTTP path for the metrics listener in daemon mode.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
