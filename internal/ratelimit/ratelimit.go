// Package ratelimit paces the crawl so successive page loads never hammer
// the storefront back to back.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Pacer enforces a minimum spacing between actions.
type Pacer interface {
	Wait(ctx context.Context) error
}

// SimplePacer spaces actions by a fixed delay plus optional jitter. The
// first call never waits.
type SimplePacer struct {
	mu         sync.Mutex
	minDelay   time.Duration
	maxDelay   time.Duration
	lastAction time.Time
}

// NewSimplePacer spaces actions by at least minDelay. When maxDelay exceeds
// minDelay, each wait picks a uniform delay between the two.
func NewSimplePacer(minDelay, maxDelay time.Duration) *SimplePacer {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &SimplePacer{minDelay: minDelay, maxDelay: maxDelay}
}

func (p *SimplePacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.lastAction)
	if delay := p.pickDelay(); elapsed < delay {
		timer := time.NewTimer(delay - elapsed)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	p.lastAction = time.Now()
	return nil
}

func (p *SimplePacer) pickDelay() time.Duration {
	if p.maxDelay == p.minDelay {
		return p.minDelay
	}
	return p.minDelay + time.Duration(rand.Int63n(int64(p.maxDelay-p.minDelay)))
}
