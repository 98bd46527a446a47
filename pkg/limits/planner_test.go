package limits

import "testing"

func TestSafetyMargin(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{20, 19},
		{5, 4},
		{250000, 249999},
		{2, 1},
		{1, 1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := SafetyMargin(tt.limit); got != tt.want {
			t.Errorf("SafetyMargin(%d) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestNewPlan_DailyQuotaBound(t *testing.T) {
	// Free-tier figures: 20 requests/day, 5 requests/minute, 250k
	// tokens/minute, single-item batches averaging 2000 tokens. The
	// per-minute dimensions allow thousands of requests per day, so the
	// daily quota (less the margin) is the binding constraint.
	plan := NewPlan(RateLimits{
		RequestsPerDay:    20,
		RequestsPerMinute: 5,
		TokensPerMinute:   250000,
	}, 1, 2000)

	if plan.SafeRequestsPerDay != 19 {
		t.Errorf("Expected safe RPD 19, got %d", plan.SafeRequestsPerDay)
	}
	if plan.SafeRequestsPerMinute != 4 {
		t.Errorf("Expected safe RPM 4, got %d", plan.SafeRequestsPerMinute)
	}
	if plan.SafeTokensPerMinute != 249999 {
		t.Errorf("Expected safe TPM 249999, got %d", plan.SafeTokensPerMinute)
	}
	if plan.EffectiveDailyRequests != 19 {
		t.Errorf("Expected effective daily budget 19, got %d", plan.EffectiveDailyRequests)
	}
}

func TestNewPlan_TokenQuotaBound(t *testing.T) {
	// Huge daily quota, tiny token quota: 10 items of 500 tokens per
	// request is 5000 tokens, so the 9999-token safe TPM allows only one
	// request per minute, 1440 per day.
	plan := NewPlan(RateLimits{
		RequestsPerDay:    100000,
		RequestsPerMinute: 100,
		TokensPerMinute:   10000,
	}, 10, 500)

	if plan.TokensPerRequest != 5000 {
		t.Errorf("Expected 5000 tokens per request, got %d", plan.TokensPerRequest)
	}
	if plan.EffectiveDailyRequests != 1440 {
		t.Errorf("Expected effective daily budget 1440, got %d", plan.EffectiveDailyRequests)
	}
}

func TestNewPlan_OversizedRequestYieldsZero(t *testing.T) {
	// A single request larger than the whole per-minute token quota can
	// never be sent inside the plan.
	plan := NewPlan(RateLimits{
		RequestsPerDay:    100,
		RequestsPerMinute: 10,
		TokensPerMinute:   1000,
	}, 4, 500)

	if plan.EffectiveDailyRequests != 0 {
		t.Errorf("Expected zero budget for oversized requests, got %d", plan.EffectiveDailyRequests)
	}
	if plan.FitsTokenBudget(2000) {
		t.Error("Expected 2000-token request to fail the token budget check")
	}
	if !plan.FitsTokenBudget(999) {
		t.Error("Expected 999-token request to fit the token budget")
	}
}

func TestPlan_Remaining(t *testing.T) {
	plan := Plan{EffectiveDailyRequests: 19}

	if got := plan.Remaining(0); got != 19 {
		t.Errorf("Expected 19 remaining, got %d", got)
	}
	if got := plan.Remaining(19); got != 0 {
		t.Errorf("Expected 0 remaining, got %d", got)
	}
	if got := plan.Remaining(25); got != 0 {
		t.Errorf("Expected remaining to floor at 0, got %d", got)
	}
}
