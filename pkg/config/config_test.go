package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const minimalConfig = `
generator:
  provider: openai
providers:
  openai:
    api_key: sk-test
`

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Generator.Model != DefaultGeneratorModel {
		t.Errorf("Expected default model %q, got %q", DefaultGeneratorModel, cfg.Generator.Model)
	}
	if cfg.Generator.MaxTokens != DefaultGeneratorMaxTokens {
		t.Errorf("Expected default max tokens %d, got %d", DefaultGeneratorMaxTokens, cfg.Generator.MaxTokens)
	}
	if cfg.Queue.LanguagesPath != DefaultLanguagesPath {
		t.Errorf("Expected default languages path %q, got %q", DefaultLanguagesPath, cfg.Queue.LanguagesPath)
	}
	if cfg.Queue.MaxSmallPerRun != DefaultMaxSmallPerRun {
		t.Errorf("Expected default max small per run %d, got %d", DefaultMaxSmallPerRun, cfg.Queue.MaxSmallPerRun)
	}
	if cfg.Output.Dir != DefaultOutputDir {
		t.Errorf("Expected default output dir %q, got %q", DefaultOutputDir, cfg.Output.Dir)
	}
	if cfg.Draft.Parallelism != DefaultDraftParallelism {
		t.Errorf("Expected default parallelism %d, got %d", DefaultDraftParallelism, cfg.Draft.Parallelism)
	}
	if cfg.Polish.Limits.RequestsPerDay != DefaultRequestsPerDay {
		t.Errorf("Expected default RPD %d, got %d", DefaultRequestsPerDay, cfg.Polish.Limits.RequestsPerDay)
	}

	openai := cfg.Providers["openai"]
	if openai.Type != "openai" {
		t.Errorf("Expected inferred type openai, got %q", openai.Type)
	}
	if openai.BaseURL != DefaultOpenAIBaseURL {
		t.Errorf("Expected default base URL %q, got %q", DefaultOpenAIBaseURL, openai.BaseURL)
	}
	if openai.Timeout != DefaultProviderTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultProviderTimeout, openai.Timeout)
	}
	if openai.MaxRetries != DefaultProviderMaxRetries {
		t.Errorf("Expected default max retries %d, got %d", DefaultProviderMaxRetries, openai.MaxRetries)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing config file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "generator: [not a mapping")
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
}

func TestLoadConfig_UnknownGeneratorProvider(t *testing.T) {
	path := writeConfigFile(t, `
generator:
  provider: nonexistent
providers:
  openai:
    api_key: sk-test
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("Expected validation error for unknown generator provider")
	}
}

func TestLoadConfig_MockModeNeedsNoProvider(t *testing.T) {
	path := writeConfigFile(t, `
generator:
  provider: openai
  mock_mode: true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Generator.MockMode {
		t.Error("Expected mock mode enabled")
	}
}

func TestLoadConfig_InvalidBaseURL(t *testing.T) {
	path := writeConfigFile(t, `
generator:
  mock_mode: true
providers:
  openai:
    base_url: "://not-a-url"
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("Expected validation error for invalid base URL")
	}
}

func TestEnvOverrides_Generator(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	t.Setenv("LEXICON_GENERATOR_MODEL", "gpt-4o")
	t.Setenv("LEXICON_GENERATOR_MOCK_MODE", "true")
	t.Setenv("LEXICON_GENERATOR_FORCE_LANGUAGE", "Zig")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	if cfg.Generator.Model != "gpt-4o" {
		t.Errorf("Expected model override gpt-4o, got %q", cfg.Generator.Model)
	}
	if !cfg.Generator.MockMode {
		t.Error("Expected mock mode enabled via env")
	}
	if cfg.Generator.ForceLanguage != "Zig" {
		t.Errorf("Expected forced language Zig, got %q", cfg.Generator.ForceLanguage)
	}
}

func TestEnvOverrides_ProviderAPIKey(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	t.Setenv("LEXICON_PROVIDERS_OPENAI_API_KEY", "sk-from-env")
	t.Setenv("LEXICON_PROVIDERS_OPENAI_TIMEOUT", "90s")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	openai := cfg.Providers["openai"]
	if openai.APIKey != "sk-from-env" {
		t.Errorf("Expected env API key, got %q", openai.APIKey)
	}
	if openai.Timeout != 90*time.Second {
		t.Errorf("Expected 90s timeout, got %v", openai.Timeout)
	}
}

func TestEnvOverrides_IntroducesProvider(t *testing.T) {
	path := writeConfigFile(t, `
generator:
  mock_mode: true
`)

	t.Setenv("LEXICON_PROVIDERS_GEMINI_API_KEY", "ya29.token")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	gemini, ok := cfg.Providers["gemini"]
	if !ok {
		t.Fatal("Expected gemini provider created from environment")
	}
	if gemini.Type != "gemini" {
		t.Errorf("Expected inferred type gemini, got %q", gemini.Type)
	}
	if gemini.BaseURL != DefaultGeminiBaseURL {
		t.Errorf("Expected default gemini base URL, got %q", gemini.BaseURL)
	}
}

func TestEnvOverrides_PolishLimits(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	t.Setenv("LEXICON_POLISH_RPD", "100")
	t.Setenv("LEXICON_POLISH_RPM", "10")
	t.Setenv("LEXICON_POLISH_TPM", "500000")
	t.Setenv("LEXICON_POLISH_REQUESTS_PER_DAY", "7")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	if cfg.Polish.Limits.RequestsPerDay != 100 {
		t.Errorf("Expected RPD 100, got %d", cfg.Polish.Limits.RequestsPerDay)
	}
	if cfg.Polish.Limits.RequestsPerMinute != 10 {
		t.Errorf("Expected RPM 10, got %d", cfg.Polish.Limits.RequestsPerMinute)
	}
	if cfg.Polish.Limits.TokensPerMinute != 500000 {
		t.Errorf("Expected TPM 500000, got %d", cfg.Polish.Limits.TokensPerMinute)
	}
	if cfg.Polish.RequestsPerDay != 7 {
		t.Errorf("Expected daily override 7, got %d", cfg.Polish.RequestsPerDay)
	}
}

func TestValidate_QueueFields(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Generator.MockMode = true
	cfg.Queue.MaxSmallPerRun = 0

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for max_small_per_run = 0")
	}
}

func TestValidate_LoggingLevel(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Generator.MockMode = true
	cfg.Telemetry.Logging.Level = "loud"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for unknown logging level")
	}
}
