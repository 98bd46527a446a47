package limits

import (
	"context"
	"sync"
	"time"
)

// Pacer spaces requests inside a run so the per-minute request quota holds.
// It is a minimal interval limiter: each request reserves the next free
// slot, and Wait blocks until that slot arrives.
//
// Pacer is safe for concurrent use.
type Pacer struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time

	now func() time.Time
}

// NewPacer creates a pacer allowing requestsPerMinute requests per minute.
// Zero or negative rates disable pacing.
func NewPacer(requestsPerMinute int) *Pacer {
	var interval time.Duration
	if requestsPerMinute > 0 {
		interval = time.Minute / time.Duration(requestsPerMinute)
	}
	return &Pacer{
		interval: interval,
		now:      time.Now,
	}
}

// Wait blocks until the next request slot arrives or the context is done.
func (p *Pacer) Wait(ctx context.Context) error {
	delay := p.reserve()
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reserve claims the next slot and returns how long to wait for it.
func (p *Pacer) reserve() time.Duration {
	if p.interval <= 0 {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if p.next.Before(now) {
		p.next = now
	}
	delay := p.next.Sub(now)
	p.next = p.next.Add(p.interval)
	return delay
}
