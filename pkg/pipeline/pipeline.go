// Package pipeline orchestrates the generation stages: full-book generation
// off the language queue, single-chapter generation, bulk drafting, and
// budgeted polishing of staged drafts.
package pipeline

import (
	"errors"
	"fmt"

	"polyglotpress/lexicon/pkg/book"
	"polyglotpress/lexicon/pkg/config"
	"polyglotpress/lexicon/pkg/prompt"
	"polyglotpress/lexicon/pkg/providerfactory"
	"polyglotpress/lexicon/pkg/providers"
	"polyglotpress/lexicon/pkg/queue"
	"polyglotpress/lexicon/pkg/telemetry/metrics"
)

// Pipeline wires the queue, prompt builder, providers, and output writer
// into runnable stages. One Pipeline serves all stages; each run constructs
// and closes its own provider.
type Pipeline struct {
	cfg     *config.Config
	queue   *queue.Queue
	builder *prompt.Builder
	writer  *book.Writer
	metrics *metrics.Collector
}

// New creates a pipeline from configuration. The master prompt file must
// exist; generation without system context produces unusable output.
func New(cfg *config.Config, collector *metrics.Collector) (*Pipeline, error) {
	builder, err := prompt.NewBuilderFromFile(cfg.Generator.MasterPromptPath)
	if err != nil {
		return nil, err
	}

	if collector == nil {
		collector = metrics.NewCollector(metrics.Config{Enabled: false})
	}

	q := queue.New(queue.Options{
		LanguagesPath:    cfg.Queue.LanguagesPath,
		CompletedLogPath: cfg.Queue.CompletedLogPath,
		SmallLanguages:   cfg.Queue.SmallLanguages,
		MaxSmallPerRun:   cfg.Queue.MaxSmallPerRun,
	})

	return &Pipeline{
		cfg:     cfg,
		queue:   q,
		builder: builder,
		writer:  book.NewWriter(book.NewLayout(cfg.Output.Dir)),
		metrics: collector,
	}, nil
}

// Queue returns the pipeline's language queue.
func (p *Pipeline) Queue() *queue.Queue {
	return p.queue
}

// Writer returns the pipeline's output writer.
func (p *Pipeline) Writer() *book.Writer {
	return p.writer
}

// mockMode reports whether the pipeline fabricates output instead of
// calling remote APIs. Mock runs never record completions or spend budget.
func (p *Pipeline) mockMode() bool {
	return p.cfg.Generator.MockMode
}

// newProvider constructs the provider adapter for a configured provider
// name. In mock mode every stage gets the offline mock regardless of name.
func (p *Pipeline) newProvider(name string) (providers.Provider, error) {
	if p.mockMode() || name == "mock" {
		return providerfactory.NewProvider(providers.ProviderConfig{
			Name:           "mock",
			Type:           "mock",
			MockSamplePath: p.cfg.Generator.MockSamplePath,
		})
	}

	pc, ok := p.cfg.Providers[name]
	if !ok {
		return nil, &providers.ConfigError{
			Provider: name,
			Field:    "providers",
			Message:  fmt.Sprintf("provider %q is not configured", name),
		}
	}

	return providerfactory.NewProvider(providers.ProviderConfig{
		Name:                name,
		Type:                pc.Type,
		BaseURL:             pc.BaseURL,
		APIKey:              pc.APIKey,
		Timeout:             pc.Timeout,
		MaxRetries:          pc.MaxRetries,
		InitialBackoff:      pc.InitialBackoff,
		MaxIdleConns:        pc.MaxIdleConns,
		MaxIdleConnsPerHost: pc.MaxIdleConnsPerHost,
		IdleConnTimeout:     pc.IdleConnTimeout,
	})
}

// classifyError maps a provider error to a metric label.
func classifyError(err error) string {
	var authErr *providers.AuthError
	var notFound *providers.NotFoundError
	var rateErr *providers.RateLimitError
	var timeoutErr *providers.TimeoutError
	var parseErr *providers.ParseError
	var cfgErr *providers.ConfigError

	switch {
	case errors.As(err, &authErr):
		return "auth"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &rateErr):
		return "rate_limit"
	case errors.As(err, &timeoutErr):
		return "timeout"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &cfgErr):
		return "config"
	default:
		return "other"
	}
}

// reportError persists a failure as an error report and records it in
// metrics. Parse failures carry the provider's raw body so the payload can
// be inspected later.
func (p *Pipeline) reportError(stage, language, slug, provider string, err error) {
	kind := classifyError(err)
	p.metrics.RecordProviderError(provider, kind)
	p.metrics.RecordGeneration(stage, provider, "error")

	report := book.ErrorReport{
		Stage:    stage,
		Language: language,
		Slug:     slug,
		Provider: provider,
		Error:    err.Error(),
	}
	var parseErr *providers.ParseError
	if errors.As(err, &parseErr) {
		report.RawResponse = parseErr.RawResponse
	}

	if _, werr := p.writer.WriteErrorReport(report); werr != nil {
		// The report is best-effort; the original error still propagates.
		_ = werr
	}
}

// flushProviderStats records accumulated retry counts for a provider.
func (p *Pipeline) flushProviderStats(prov providers.Provider) {
	stats := prov.GetStats()
	p.metrics.RecordRetries(prov.GetName(), stats.Retries)
}
