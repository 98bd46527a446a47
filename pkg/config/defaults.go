package config

import "time"

// Default values for configuration fields.
const (
	// Generator defaults
	DefaultGeneratorProvider    = "openai"
	DefaultGeneratorModel       = "gpt-4o-mini"
	DefaultGeneratorTemperature = 0.7
	DefaultGeneratorMaxTokens   = 6000
	DefaultMasterPromptPath     = "prompts/master_prompt.txt"

	// Provider defaults
	DefaultProviderTimeout        = 60 * time.Second
	DefaultProviderMaxRetries     = 5
	DefaultProviderInitialBackoff = 2 * time.Second
	DefaultMaxIdleConns           = 10
	DefaultMaxIdleConnsPerHost    = 5
	DefaultIdleConnTimeout        = 90 * time.Second

	// Queue defaults
	DefaultLanguagesPath    = "languages.txt"
	DefaultCompletedLogPath = "completed_languages.txt"
	DefaultMaxSmallPerRun   = 2

	// Output defaults
	DefaultOutputDir = "output"

	// Draft defaults
	DefaultDraftProvider    = "groq"
	DefaultDraftModel       = "mixtral-8x7b"
	DefaultDraftTemperature = 0.7
	DefaultDraftMaxTokens   = 5000
	DefaultDraftParallelism = 4

	// Polish defaults
	DefaultPolishProvider    = "gemini"
	DefaultPolishModel       = "gemini-2.5-flash"
	DefaultPolishTemperature = 0.65
	DefaultPolishMaxTokens   = 3000
	DefaultPolishBatchSize   = 1
	DefaultPolishSampleSize  = 10
	DefaultUsageDBPath       = "data/usage.db"

	// Rate limit defaults (published Gemini free-tier constants)
	DefaultRequestsPerDay    = 20
	DefaultRequestsPerMinute = 5
	DefaultTokensPerMinute   = 250000

	// Schedule defaults
	DefaultGenerateCron     = "0 6 * * *"
	DefaultPolishCron       = "0 18 * * *"
	DefaultDebounceInterval = 30 * time.Second
	DefaultMetricsListen    = "127.0.0.1:9090"

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "text"
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"
	DefaultNamespace      = "lexicon"
)

// DefaultSmallLanguages are languages historically too small for a full run
// of their own; they are grouped two-at-a-time by the queue.
var DefaultSmallLanguages = []string{
	"Lua", "Nim", "Crystal", "Smalltalk", "Haxe", "Zig", "Racket",
}

// Known provider base URLs, applied when a provider entry omits base_url.
const (
	DefaultOpenAIBaseURL      = "https://api.openai.com/v1"
	DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co"
	DefaultGroqBaseURL        = "https://api.groq.com/openai/v1"
	DefaultGeminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta2"
)

// ApplyDefaults fills in default values for any unset configuration fields.
// It is called automatically by LoadConfig after parsing.
func ApplyDefaults(cfg *Config) {
	// Generator defaults
	if cfg.Generator.Provider == "" {
		cfg.Generator.Provider = DefaultGeneratorProvider
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = DefaultGeneratorModel
	}
	if cfg.Generator.Temperature == 0 {
		cfg.Generator.Temperature = DefaultGeneratorTemperature
	}
	if cfg.Generator.MaxTokens == 0 {
		cfg.Generator.MaxTokens = DefaultGeneratorMaxTokens
	}
	if cfg.Generator.MasterPromptPath == "" {
		cfg.Generator.MasterPromptPath = DefaultMasterPromptPath
	}

	// Provider defaults
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	for name, provider := range cfg.Providers {
		if provider.Type == "" {
			provider.Type = inferProviderType(name)
		}
		if provider.BaseURL == "" {
			provider.BaseURL = defaultBaseURL(provider.Type)
		}
		if provider.Timeout == 0 {
			provider.Timeout = DefaultProviderTimeout
		}
		if provider.MaxRetries == 0 {
			provider.MaxRetries = DefaultProviderMaxRetries
		}
		if provider.InitialBackoff == 0 {
			provider.InitialBackoff = DefaultProviderInitialBackoff
		}
		if provider.MaxIdleConns == 0 {
			provider.MaxIdleConns = DefaultMaxIdleConns
		}
		if provider.MaxIdleConnsPerHost == 0 {
			provider.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
		}
		if provider.IdleConnTimeout == 0 {
			provider.IdleConnTimeout = DefaultIdleConnTimeout
		}
		cfg.Providers[name] = provider
	}

	// Queue defaults
	if cfg.Queue.LanguagesPath == "" {
		cfg.Queue.LanguagesPath = DefaultLanguagesPath
	}
	if cfg.Queue.CompletedLogPath == "" {
		cfg.Queue.CompletedLogPath = DefaultCompletedLogPath
	}
	if cfg.Queue.SmallLanguages == nil {
		cfg.Queue.SmallLanguages = append([]string(nil), DefaultSmallLanguages...)
	}
	if cfg.Queue.MaxSmallPerRun == 0 {
		cfg.Queue.MaxSmallPerRun = DefaultMaxSmallPerRun
	}

	// Output defaults
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}

	// Draft defaults
	if cfg.Draft.Provider == "" {
		cfg.Draft.Provider = DefaultDraftProvider
	}
	if cfg.Draft.Model == "" {
		cfg.Draft.Model = DefaultDraftModel
	}
	if cfg.Draft.Temperature == 0 {
		cfg.Draft.Temperature = DefaultDraftTemperature
	}
	if cfg.Draft.MaxTokens == 0 {
		cfg.Draft.MaxTokens = DefaultDraftMaxTokens
	}
	if cfg.Draft.Parallelism == 0 {
		cfg.Draft.Parallelism = DefaultDraftParallelism
	}

	// Polish defaults
	if cfg.Polish.Provider == "" {
		cfg.Polish.Provider = DefaultPolishProvider
	}
	if cfg.Polish.Model == "" {
		cfg.Polish.Model = DefaultPolishModel
	}
	if cfg.Polish.Temperature == 0 {
		cfg.Polish.Temperature = DefaultPolishTemperature
	}
	if cfg.Polish.MaxTokens == 0 {
		cfg.Polish.MaxTokens = DefaultPolishMaxTokens
	}
	if cfg.Polish.BatchSize == 0 {
		cfg.Polish.BatchSize = DefaultPolishBatchSize
	}
	if cfg.Polish.SampleSize == 0 {
		cfg.Polish.SampleSize = DefaultPolishSampleSize
	}
	if cfg.Polish.Limits.RequestsPerDay == 0 {
		cfg.Polish.Limits.RequestsPerDay = DefaultRequestsPerDay
	}
	if cfg.Polish.Limits.RequestsPerMinute == 0 {
		cfg.Polish.Limits.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if cfg.Polish.Limits.TokensPerMinute == 0 {
		cfg.Polish.Limits.TokensPerMinute = DefaultTokensPerMinute
	}
	if cfg.Polish.UsageDBPath == "" {
		cfg.Polish.UsageDBPath = DefaultUsageDBPath
	}

	// Schedule defaults
	if cfg.Schedule.GenerateCron == "" {
		cfg.Schedule.GenerateCron = DefaultGenerateCron
	}
	if cfg.Schedule.PolishCron == "" {
		cfg.Schedule.PolishCron = DefaultPolishCron
	}
	if cfg.Schedule.DebounceInterval == 0 {
		cfg.Schedule.DebounceInterval = DefaultDebounceInterval
	}
	if cfg.Schedule.MetricsListen == "" {
		cfg.Schedule.MetricsListen = DefaultMetricsListen
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultNamespace
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}

// inferProviderType maps a provider name to an adapter type.
// Unknown names fall back to the generic OpenAI-compatible adapter.
func inferProviderType(name string) string {
	switch name {
	case "openai", "huggingface", "groq", "gemini", "mock":
		return name
	default:
		return "generic"
	}
}

// defaultBaseURL returns the well-known endpoint for a provider type.
func defaultBaseURL(providerType string) string {
	switch providerType {
	case "openai":
		return DefaultOpenAIBaseURL
	case "huggingface":
		return DefaultHuggingFaceBaseURL
	case "groq":
		return DefaultGroqBaseURL
	case "gemini":
		return DefaultGeminiBaseURL
	default:
		return ""
	}
}
