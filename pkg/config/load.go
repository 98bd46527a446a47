package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention LEXICON_SECTION_FIELD (e.g., LEXICON_GENERATOR_MODEL) and always
// take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Generator overrides (these map the workflow_dispatch inputs of the
	// scheduled pipeline: mock mode, forced language, model override)
	if val := os.Getenv("LEXICON_GENERATOR_PROVIDER"); val != "" {
		cfg.Generator.Provider = val
	}
	if val := os.Getenv("LEXICON_GENERATOR_MODEL"); val != "" {
		cfg.Generator.Model = val
	}
	if val := os.Getenv("LEXICON_GENERATOR_TEMPERATURE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Generator.Temperature = f
		}
	}
	if val := os.Getenv("LEXICON_GENERATOR_MAX_TOKENS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Generator.MaxTokens = i
		}
	}
	if val := os.Getenv("LEXICON_GENERATOR_MOCK_MODE"); val != "" {
		cfg.Generator.MockMode = envTrue(val)
	}
	if val := os.Getenv("LEXICON_GENERATOR_FORCE_LANGUAGE"); val != "" {
		cfg.Generator.ForceLanguage = strings.TrimSpace(val)
	}
	if val := os.Getenv("LEXICON_GENERATOR_MASTER_PROMPT_PATH"); val != "" {
		cfg.Generator.MasterPromptPath = val
	}

	// Provider overrides for the known backends
	applyProviderEnvOverrides(cfg, "openai")
	applyProviderEnvOverrides(cfg, "huggingface")
	applyProviderEnvOverrides(cfg, "groq")
	applyProviderEnvOverrides(cfg, "gemini")

	// Queue overrides
	if val := os.Getenv("LEXICON_QUEUE_LANGUAGES_PATH"); val != "" {
		cfg.Queue.LanguagesPath = val
	}
	if val := os.Getenv("LEXICON_QUEUE_COMPLETED_LOG_PATH"); val != "" {
		cfg.Queue.CompletedLogPath = val
	}

	// Output overrides
	if val := os.Getenv("LEXICON_OUTPUT_DIR"); val != "" {
		cfg.Output.Dir = val
	}

	// Draft overrides
	if val := os.Getenv("LEXICON_DRAFT_MODEL"); val != "" {
		cfg.Draft.Model = val
	}
	if val := os.Getenv("LEXICON_DRAFT_PARALLELISM"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Draft.Parallelism = i
		}
	}

	// Polish overrides
	if val := os.Getenv("LEXICON_POLISH_MODEL"); val != "" {
		cfg.Polish.Model = val
	}
	if val := os.Getenv("LEXICON_POLISH_BATCH_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Polish.BatchSize = i
		}
	}
	if val := os.Getenv("LEXICON_POLISH_REQUESTS_PER_DAY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Polish.RequestsPerDay = i
		}
	}
	if val := os.Getenv("LEXICON_POLISH_RPD"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Polish.Limits.RequestsPerDay = i
		}
	}
	if val := os.Getenv("LEXICON_POLISH_RPM"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Polish.Limits.RequestsPerMinute = i
		}
	}
	if val := os.Getenv("LEXICON_POLISH_TPM"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Polish.Limits.TokensPerMinute = i
		}
	}
	if val := os.Getenv("LEXICON_POLISH_USAGE_DB_PATH"); val != "" {
		cfg.Polish.UsageDBPath = val
	}

	// Telemetry overrides
	if val := os.Getenv("LEXICON_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("LEXICON_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("LEXICON_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}

// applyProviderEnvOverrides applies environment variable overrides for a
// specific provider. Provider environment variables follow the format
// LEXICON_PROVIDERS_<NAME>_<FIELD> where NAME is the uppercase provider name.
func applyProviderEnvOverrides(cfg *Config, providerName string) {
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}

	provider, exists := cfg.Providers[providerName]

	prefix := fmt.Sprintf("LEXICON_PROVIDERS_%s_", strings.ToUpper(providerName))

	modified := false

	if val := os.Getenv(prefix + "BASE_URL"); val != "" {
		provider.BaseURL = val
		modified = true
	}
	if val := os.Getenv(prefix + "API_KEY"); val != "" {
		provider.APIKey = val
		modified = true
	}
	if val := os.Getenv(prefix + "TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			provider.Timeout = d
			modified = true
		}
	}
	if val := os.Getenv(prefix + "MAX_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			provider.MaxRetries = i
			modified = true
		}
	}
	if val := os.Getenv(prefix + "INITIAL_BACKOFF"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			provider.InitialBackoff = d
			modified = true
		}
	}

	if modified && !exists {
		// A provider introduced purely through the environment still needs
		// the type/endpoint/pool defaults.
		provider.Type = inferProviderType(providerName)
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
	}

	if modified || exists {
		cfg.Providers[providerName] = provider
	}
}

// envTrue reports whether an environment flag value means "enabled".
func envTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
