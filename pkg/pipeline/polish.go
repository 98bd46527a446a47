package pipeline

import (
	"context"
	"log/slog"
	"time"

	"polyglotpress/lexicon/pkg/book"
	"polyglotpress/lexicon/pkg/limits"
	"polyglotpress/lexicon/pkg/prompt"
	"polyglotpress/lexicon/pkg/providers"
)

// PolishOptions adjusts a single polish run.
type PolishOptions struct {
	// MaxRequests caps the number of requests this run may send, on top
	// of the computed daily budget. Zero means no extra cap.
	MaxRequests int
}

// PolishResult summarizes a polish run.
type PolishResult struct {
	// Polished are "Language/slug" identifiers of chapters finalized.
	Polished []string

	// RequestsUsed is the number of requests this run sent.
	RequestsUsed int

	// RequestsRemaining is the daily budget left after this run.
	RequestsRemaining int

	// Stopped names why the run ended early: "budget" when the daily
	// budget ran out, "quota" when the provider rejected a request for
	// quota even after retries. Empty when all pending drafts were
	// processed.
	Stopped string
}

// RunPolish upgrades staged drafts into final chapters within the daily
// request budget.
//
// The budget is planned from the provider's published rate limits with a
// one-unit safety margin on each dimension, then reduced by the requests
// already recorded for today in the usage store, so several runs on the
// same day share one budget. Drafts are packed into batches of up to
// BatchSize items whose combined token estimate fits the per-minute token
// quota; a single draft too large for the quota is sent alone rather than
// silently dropped.
//
// A quota error ends the run immediately: once the provider starts
// rejecting for quota, every further request burns budget on failures.
// Other per-batch errors are reported and the run continues.
func (p *Pipeline) RunPolish(ctx context.Context, opts PolishOptions) (*PolishResult, error) {
	start := time.Now()
	defer func() { p.metrics.RecordStageDuration("polish", time.Since(start)) }()

	drafts, err := book.ScanDrafts(p.writer.Layout())
	if err != nil {
		return nil, err
	}
	p.metrics.SetDraftsPending(len(drafts))

	result := &PolishResult{}
	if len(drafts) == 0 {
		slog.Info("no drafts pending polish")
		return result, nil
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

	budget := plan.Remaining(used)
	if override := p.cfg.Polish.RequestsPerDay; override > 0 && budget > override {
		budget = override
	}
	if opts.MaxRequests > 0 && budget > opts.MaxRequests {
		budget = opts.MaxRequests
	}

	slog.Info("polish run started",
		"drafts_pending", len(drafts),
		"used_today", used,
		"budget", budget,
		"batch_size", p.cfg.Polish.BatchSize,
	)

	if budget == 0 {
		result.Stopped = "budget"
		slog.Warn("daily polish budget exhausted before run")
		return result, nil
	}

	prov, err := p.newProvider(p.cfg.Polish.Provider)
	if err != nil {
		return nil, err
	}
	defer prov.Close()
	defer p.flushProviderStats(prov)

	// Mock runs spend no quota, so they are not paced either.
	pacerRate := plan.SafeRequestsPerMinute
	if p.mockMode() {
		pacerRate = 0
	}
	pacer := limits.NewPacer(pacerRate)

	for _, batch := range packBatches(drafts, p.cfg.Polish.BatchSize, plan) {
		if result.RequestsUsed >= budget {
			result.Stopped = "budget"
			break
		}
		if err := pacer.Wait(ctx); err != nil {
			return result, err
		}

		err := p.polishBatch(ctx, prov, store, batch, result)
		if err != nil {
			if providers.IsQuota(err) {
				result.Stopped = "quota"
				slog.Warn("provider quota exhausted, stopping polish run", "error", err)
				break
			}
			if providers.IsFatal(err) {
				return result, err
			}
			// Reported already; the next batch may still succeed.
		}
	}

	result.RequestsRemaining = plan.Remaining(used + result.RequestsUsed)
	slog.Info("polish run finished",
		"polished", len(result.Polished),
		"requests_used", result.RequestsUsed,
		"requests_remaining", result.RequestsRemaining,
		"stopped", result.Stopped,
	)
	return result, nil
}

func (p *Pipeline) polishBatch(ctx context.Context, prov providers.Provider, store *limits.UsageStore, batch []book.Draft, result *PolishResult) error {
	items := make([]prompt.PolishItem, len(batch))
	tokens := 0
	for i, d := range batch {
		items[i] = prompt.PolishItem{
			Language: d.Meta.Language,
			Slug:     d.Meta.Slug,
			Text:     d.Text,
		}
		tokens += d.Meta.EstimatedTokens
	}
	p.metrics.RecordRequestTokens(tokens)

	resp, err := prov.Generate(ctx, &providers.GenerationRequest{
		Model:       p.cfg.Polish.Model,
		Prompt:      p.builder.Polish(items),
		Temperature: p.cfg.Polish.Temperature,
		MaxTokens:   p.cfg.Polish.MaxTokens,
		Metadata: map[string]string{
			"stage": "polish",
		},
	})

	// The request went out (and was retried internally) whether or not it
	// succeeded, so it counts against the daily budget. Mock runs spend
	// nothing.
	result.RequestsUsed++
	if !p.mockMode() {
		if rerr := store.RecordRequest(ctx, p.cfg.Polish.Provider); rerr != nil {
			slog.Error("failed to record usage", "error", rerr)
		}
	}

	if err != nil {
		first := items[0]
		p.reportError("polish", first.Language, first.Slug, prov.GetName(), err)
		return err
	}

	parts := prompt.SplitPolished(resp.Content, len(items))
	for i, item := range items {
		if _, err := p.writer.WriteFinal(item.Language, item.Slug, parts[i]); err != nil {
			return err
		}
		result.Polished = append(result.Polished, item.Language+"/"+item.Slug)
	}
	p.metrics.RecordGeneration("polish", prov.GetName(), "success")
	return nil
}

// packBatches packs drafts in scan order into batches of up to batchSize
// items whose combined token estimate fits the per-minute token quota. A
// single draft exceeding the quota on its own forms a singleton batch.
func packBatches(drafts []book.Draft, batchSize int, plan limits.Plan) [][]book.Draft {
	if batchSize < 1 {
		batchSize = 1
	}

	var batches [][]book.Draft
	var current []book.Draft
	currentTokens := 0

	for _, d := range drafts {
		est := d.Meta.EstimatedTokens
		if len(current) > 0 &&
			(len(current) >= batchSize || !plan.FitsTokenBudget(currentTokens+est)) {
			batches = append(batches, current)
			current = nil
			currentTokens = 0
		}
		current = append(current, d)
		currentTokens += est
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

// averageEstimatedTokens averages the token estimates of up to sampleSize
// drafts for budget planning.
func averageEstimatedTokens(drafts []book.Draft, sampleSize int) int {
	if len(drafts) == 0 {
		return 0
	}
	if sampleSize < 1 || sampleSize > len(drafts) {
		sampleSize = len(drafts)
	}

	total := 0
	for _, d := range drafts[:sampleSize] {
		total += d.Meta.EstimatedTokens
	}
	return total / sampleSize
}
