package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"polyglotpress/lexicon/pkg/book"
	"polyglotpress/lexicon/pkg/prompt"
	"polyglotpress/lexicon/pkg/providers"
)

// DraftResult summarizes a bulk drafting run.
type DraftResult struct {
	// Drafted are languages whose drafts were staged.
	Drafted []string

	// Skipped are languages that already had a staged or polished draft.
	Skipped []string

	// Failed are languages whose drafting failed; each has a placeholder
	// draft and an error report.
	Failed []string
}

// RunDrafts stages cheap drafts for languages using a fixed-size worker
// pool. With no explicit language list, every language still missing from
// the completion log is drafted; drafting is the cheap stage, so it covers
// the whole backlog ahead of the budgeted polish runs.
//
// Languages that already have a staged draft (or a polished final) are
// skipped, so re-runs only fill gaps. A failed language gets a placeholder
// draft pointing at its error report and does not stop the pool.
func (p *Pipeline) RunDrafts(ctx context.Context, languages []string) (*DraftResult, error) {
	start := time.Now()
	defer func() { p.metrics.RecordStageDuration("draft", time.Since(start)) }()

	if len(languages) == 0 {
		var err error
		languages, err = p.pendingLanguages()
		if err != nil {
			return nil, err
		}
	}

	result := &DraftResult{}
	if len(languages) == 0 {
		slog.Info("no languages pending drafts")
		return result, nil
	}

	prov, err := p.newProvider(p.cfg.Draft.Provider)
	if err != nil {
		return nil, err
	}
	defer prov.Close()
	defer p.flushProviderStats(prov)

	workers := p.cfg.Draft.Parallelism
	if workers < 1 {
		workers = 1
	}

	slog.Info("drafting run started",
		"languages", len(languages),
		"workers", workers,
		"provider", prov.GetName(),
		"model", p.cfg.Draft.Model,
	)

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		work = make(chan string)
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for language := range work {
				status := p.draftLanguage(ctx, prov, language)
				mu.Lock()
				switch status {
				case draftOK:
					result.Drafted = append(result.Drafted, language)
				case draftSkipped:
					result.Skipped = append(result.Skipped, language)
				case draftFailed:
					result.Failed = append(result.Failed, language)
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, language := range languages {
		select {
		case <-ctx.Done():
			break feed
		case work <- language:
		}
	}
	close(work)
	wg.Wait()

	slog.Info("drafting run finished",
		"drafted", len(result.Drafted),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed),
	)
	return result, ctx.Err()
}

type draftStatus int

const (
	draftOK draftStatus = iota
	draftSkipped
	draftFailed
)

func (p *Pipeline) draftLanguage(ctx context.Context, prov providers.Provider, language string) draftStatus {
	slug := prompt.Slugify(language)
	layout := p.writer.Layout()

	if fileExists(layout.DraftPath(language, slug)) || fileExists(layout.FinalPath(language, slug)) {
		return draftSkipped
	}

	resp, err := prov.Generate(ctx, &providers.GenerationRequest{
		Model:       p.cfg.Draft.Model,
		Prompt:      p.builder.Draft(language),
		Temperature: p.cfg.Draft.Temperature,
		MaxTokens:   p.cfg.Draft.MaxTokens,
		Metadata: map[string]string{
			"stage":    "draft",
			"language": language,
		},
	})
	if err != nil {
		p.reportError("draft", language, slug, prov.GetName(), err)
		// The placeholder keeps the language visible in the drafts tree;
		// it is replaced on the next successful drafting run.
		placeholder := fmt.Sprintf("# %s\n\n_Draft generation failed: %v_\n", language, err)
		if _, werr := p.writer.WriteDraft(language, slug, placeholder, book.DraftMeta{Title: language}); werr != nil {
			slog.Error("failed to write placeholder draft", "language", language, "error", werr)
		}
		return draftFailed
	}

	if _, err := p.writer.WriteDraft(language, slug, resp.Content, book.DraftMeta{
		Title: language,
		Model: p.cfg.Draft.Model,
	}); err != nil {
		slog.Error("failed to write draft", "language", language, "error", err)
		return draftFailed
	}

	p.metrics.RecordGeneration("draft", prov.GetName(), "success")
	return draftOK
}

// pendingLanguages returns all languages missing from the completion log,
// in list order.
func (p *Pipeline) pendingLanguages() ([]string, error) {
	languages, err := p.queue.Languages()
	if err != nil {
		return nil, err
	}
	completed, err := p.queue.Completed()
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, language := range languages {
		if _, done := completed[language]; !done {
			pending = append(pending, language)
		}
	}
	return pending, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
