package pipeline

import (
	"context"
	"log/slog"
	"time"

	"polyglotpress/lexicon/pkg/prompt"
	"polyglotpress/lexicon/pkg/providers"
)

// GenerateResult summarizes a book-generation run.
type GenerateResult struct {
	// Batch is the set of languages the run attempted.
	Batch []string

	// Succeeded are languages whose books were written (and, outside mock
	// mode, recorded in the completion log).
	Succeeded []string

	// Failed are languages whose generation failed; each failure has an
	// error report on disk.
	Failed []string
}

// RunGenerate generates complete books for the next queue batch.
//
// Failures are isolated per language: one failed language is reported and
// the run moves on, so a bad model response cannot stall the whole queue.
// Fatal errors (authentication, unknown model, misconfiguration) abort the
// run instead, because every subsequent request would fail the same way.
// A language is marked completed only after its book file is on disk, and
// never in mock mode.
func (p *Pipeline) RunGenerate(ctx context.Context) (*GenerateResult, error) {
	start := time.Now()
	defer func() { p.metrics.RecordStageDuration("generate", time.Since(start)) }()

	batch, err := p.nextGenerateBatch()
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Batch: batch}
	if len(batch) == 0 {
		slog.Info("language queue exhausted, nothing to generate")
		return result, nil
	}

	prov, err := p.newProvider(p.cfg.Generator.Provider)
	if err != nil {
		return nil, err
	}
	defer prov.Close()
	defer p.flushProviderStats(prov)

	slog.Info("generation run started",
		"batch", batch,
		"provider", prov.GetName(),
		"model", p.cfg.Generator.Model,
		"mock", p.mockMode(),
	)

	for _, language := range batch {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := p.generateBook(ctx, prov, language); err != nil {
			result.Failed = append(result.Failed, language)
			p.reportError("generate", language, "", prov.GetName(), err)
			if providers.IsFatal(err) {
				slog.Error("fatal provider error, aborting run", "language", language, "error", err)
				return result, err
			}
			slog.Error("generation failed, continuing with next language",
				"language", language,
				"error", err,
			)
			continue
		}
		result.Succeeded = append(result.Succeeded, language)
	}

	slog.Info("generation run finished",
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return result, nil
}

// nextGenerateBatch returns the languages for this run: the forced language
// when set, otherwise the queue's next batch.
func (p *Pipeline) nextGenerateBatch() ([]string, error) {
	if force := p.cfg.Generator.ForceLanguage; force != "" {
		slog.Info("queue selection bypassed", "forced_language", force)
		return []string{force}, nil
	}
	return p.queue.NextBatch()
}

func (p *Pipeline) generateBook(ctx context.Context, prov providers.Provider, language string) error {
	resp, err := prov.Generate(ctx, &providers.GenerationRequest{
		Model:       p.cfg.Generator.Model,
		System:      p.builder.Master(),
		Prompt:      p.builder.Book(language),
		Temperature: p.cfg.Generator.Temperature,
		MaxTokens:   p.cfg.Generator.MaxTokens,
		Metadata: map[string]string{
			"stage":    "generate",
			"language": language,
		},
	})
	if err != nil {
		return err
	}

	if _, err := p.writer.WriteBook(language, resp.Content); err != nil {
		return err
	}
	p.metrics.RecordGeneration("generate", prov.GetName(), "success")

	// The completion log is the source of truth for queue progress. Mock
	// runs rehearse the pipeline without consuming queue positions.
	if p.mockMode() {
		slog.Info("mock mode: completion not recorded", "language", language)
		return nil
	}
	return p.queue.MarkCompleted(language)
}

// RunChapter generates a single chapter for a language and writes it under
// the language's chapters directory. The chapter file name is the slugified
// title; chapter runs do not touch the completion log.
func (p *Pipeline) RunChapter(ctx context.Context, language, title string) (string, error) {
	start := time.Now()
	defer func() { p.metrics.RecordStageDuration("chapter", time.Since(start)) }()

	slug := prompt.Slugify(title)

	prov, err := p.newProvider(p.cfg.Generator.Provider)
	if err != nil {
		return "", err
	}
	defer prov.Close()
	defer p.flushProviderStats(prov)

	// The prompt is the frontmatter scaffold followed by the hard format
	// constraints; the model continues the document from the scaffold.
	promptText := p.builder.Chapter(language, title) +
		p.builder.ChapterInstructions(language, title)

	resp, err := prov.Generate(ctx, &providers.GenerationRequest{
		Model:       p.cfg.Generator.Model,
		System:      p.builder.Master(),
		Prompt:      promptText,
		Temperature: p.cfg.Generator.Temperature,
		MaxTokens:   p.cfg.Generator.MaxTokens,
		Metadata: map[string]string{
			"stage":    "chapter",
			"language": language,
			"title":    title,
		},
	})
	if err != nil {
		p.reportError("chapter", language, slug, prov.GetName(), err)
		return "", err
	}

	path, err := p.writer.WriteChapter(language, title, slug, resp.Content)
	if err != nil {
		return "", err
	}
	p.metrics.RecordGeneration("chapter", prov.GetName(), "success")

	return path, nil
}
