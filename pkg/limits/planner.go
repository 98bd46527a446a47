package limits

import "log/slog"

// RateLimits holds the published per-model quota figures.
type RateLimits struct {
	// RequestsPerDay is the published daily request quota.
	RequestsPerDay int

	// RequestsPerMinute is the published per-minute request quota.
	RequestsPerMinute int

	// TokensPerMinute is the published per-minute token quota.
	TokensPerMinute int
}

// SafetyMargin reduces a published limit by one, never below one. Running
// exactly at a published limit trips server-side enforcement on clock skew
// alone, so every dimension is planned one unit short.
func SafetyMargin(limit int) int {
	if limit <= 1 {
		return 1
	}
	return limit - 1
}

// Plan is the spending envelope for polish runs on one day.
type Plan struct {
	// SafeRequestsPerDay is the daily request quota after the safety margin.
	SafeRequestsPerDay int

	// SafeRequestsPerMinute is the per-minute request quota after the
	// safety margin.
	SafeRequestsPerMinute int

	// SafeTokensPerMinute is the per-minute token quota after the safety
	// margin.
	SafeTokensPerMinute int

	// TokensPerRequest is the planned token load of one batched request.
	TokensPerRequest int

	// EffectiveDailyRequests is the number of requests a day can sustain
	// without tripping any of the three limits.
	EffectiveDailyRequests int
}

// NewPlan derives the effective daily request budget for batched requests of
// batchSize items averaging avgTokensPerItem tokens each.
//
// The per-minute request rate is capped by both the request quota and the
// token quota divided by the per-request token load; the smaller of the two,
// extrapolated over a day, is then capped by the daily request quota.
func NewPlan(limits RateLimits, batchSize, avgTokensPerItem int) Plan {
	if batchSize < 1 {
		batchSize = 1
	}
	if avgTokensPerItem < 1 {
		avgTokensPerItem = 1
	}

	plan := Plan{
		SafeRequestsPerDay:    SafetyMargin(limits.RequestsPerDay),
		SafeRequestsPerMinute: SafetyMargin(limits.RequestsPerMinute),
		SafeTokensPerMinute:   SafetyMargin(limits.TokensPerMinute),
		TokensPerRequest:      batchSize * avgTokensPerItem,
	}

	requestsPerMinute := plan.SafeRequestsPerMinute
	if byTokens := plan.SafeTokensPerMinute / plan.TokensPerRequest; byTokens < requestsPerMinute {
		requestsPerMinute = byTokens
	}

	effective := requestsPerMinute * 60 * 24
	if plan.SafeRequestsPerDay < effective {
		effective = plan.SafeRequestsPerDay
	}
	if effective < 0 {
		effective = 0
	}
	plan.EffectiveDailyRequests = effective

	slog.Debug("budget plan computed",
		"safe_rpd", plan.SafeRequestsPerDay,
		"safe_rpm", plan.SafeRequestsPerMinute,
		"safe_tpm", plan.SafeTokensPerMinute,
		"tokens_per_request", plan.TokensPerRequest,
		"effective_daily_requests", plan.EffectiveDailyRequests,
	)

	return plan
}

// Remaining returns how many requests are left today given the count already
// spent, never below zero.
func (p Plan) Remaining(used int) int {
	remaining := p.EffectiveDailyRequests - used
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FitsTokenBudget reports whether a request with the given estimated token
// load stays inside the per-minute token quota. A batch that fails this
// check must be shrunk before sending; a single item that fails it is sent
// alone and its failure is the provider's to report.
func (p Plan) FitsTokenBudget(estimatedTokens int) bool {
	return estimatedTokens <= p.SafeTokensPerMinute
}
