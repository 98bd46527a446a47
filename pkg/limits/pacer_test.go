package limits

import (
	"context"
	"testing"
	"time"
)

func TestPacer_Intervals(t *testing.T) {
	p := NewPacer(4) // one slot every 15 seconds
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return base }

	if delay := p.reserve(); delay != 0 {
		t.Errorf("Expected first request to pass immediately, got delay %s", delay)
	}
	if delay := p.reserve(); delay != 15*time.Second {
		t.Errorf("Expected second request delayed 15s, got %s", delay)
	}
	if delay := p.reserve(); delay != 30*time.Second {
		t.Errorf("Expected third request delayed 30s, got %s", delay)
	}
}

func TestPacer_IdleResetsSchedule(t *testing.T) {
	p := NewPacer(60) // one slot per second
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return base }

	p.reserve()
	p.reserve()

	// After a long idle stretch the next request should not wait.
	p.now = func() time.Time { return base.Add(time.Hour) }
	if delay := p.reserve(); delay != 0 {
		t.Errorf("Expected no delay after idle period, got %s", delay)
	}
}

func TestPacer_Disabled(t *testing.T) {
	p := NewPacer(0)
	for i := 0; i < 5; i++ {
		if delay := p.reserve(); delay != 0 {
			t.Errorf("Expected disabled pacer to never delay, got %s", delay)
		}
	}
}

func TestPacer_WaitHonorsContext(t *testing.T) {
	p := NewPacer(1) // one slot per minute
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("First wait should not block: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.Wait(ctx)
	if err == nil {
		t.Fatal("Expected context error while waiting for a distant slot")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Wait did not return promptly on cancellation: %s", elapsed)
	}
}
