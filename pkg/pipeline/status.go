package pipeline

import (
	"context"

	"polyglotpress/lexicon/pkg/book"
	"polyglotpress/lexicon/pkg/limits"
)

// Status is a snapshot of pipeline progress.
type Status struct {
	// TotalLanguages is the number of languages in the list.
	TotalLanguages int

	// CompletedLanguages is the number of distinct languages in the
	// completion log.
	CompletedLanguages int

	// NextBatch is the batch the next generation run would process.
	NextBatch []string

	// DraftsPending is the number of staged drafts awaiting polish.
	DraftsPending int

	// PolishRequestsToday is the number of polish requests already
	// recorded for today.
	PolishRequestsToday int

	// PolishBudgetRemaining is the number of polish requests left today.
	PolishBudgetRemaining int
}

// Status reports queue progress, pending drafts, and the remaining polish
// budget for today.
func (p *Pipeline) Status(ctx context.Context) (*Status, error) {
	languages, err := p.queue.Languages()
	if err != nil {
		return nil, err
	}
	completed, err := p.queue.Completed()
	if err != nil {
		return nil, err
	}
	next, err := p.queue.NextBatch()
	if err != nil {
		return nil, err
	}

	drafts, err := book.ScanDrafts(p.writer.Layout())
	if err != nil {
		return nil, err
	}
	p.metrics.SetDraftsPending(len(drafts))

	status := &Status{
		TotalLanguages:     len(languages),
		CompletedLanguages: len(completed),
		NextBatch:          next,
		DraftsPending:      len(drafts),
	}

	plan := limits.NewPlan(limits.RateLimits{
		RequestsPerDay:    p.cfg.Polish.Limits.RequestsPerDay,
		RequestsPerMinute: p.cfg.Polish.Limits.RequestsPerMinute,
		TokensPerMinute:   p.cfg.Polish.Limits.TokensPerMinute,
	}, p.cfg.Polish.BatchSize, averageEstimatedTokens(drafts, p.cfg.Polish.SampleSize))

	store, err := limits.OpenUsageStore(p.cfg.Polish.UsageDBPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	used, err := store.CountToday(ctx, p.cfg.Polish.Provider)
	if err != nil {
		return nil, err
	}
	status.PolishRequestsToday = used
	status.PolishBudgetRemaining = plan.Remaining(used)

	return status, nil
}
