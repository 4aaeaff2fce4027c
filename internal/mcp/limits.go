package mcp

import (
	"fmt"
	"sync"
	"time"
)

// tokenBucket limits calls to one tool. It starts full.
type tokenBucket struct {
	mu       sync.Mutex
	rate     float64 // tokens per second
	capacity float64
	tokens   float64
	last     time.Time
	now      func() time.Time
}

func newTokenBucket(perMinute float64, burst int) *tokenBucket {
	return &tokenBucket{
		rate:     perMinute / 60,
		capacity: float64(burst),
		tokens:   float64(burst),
		now:      time.Now,
	}
}

func (b *tokenBucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if !b.last.IsZero() {
		b.tokens = min(b.capacity, b.tokens+b.rate*now.Sub(b.last).Seconds())
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// toolLimits maps tool names to their buckets.
type toolLimits map[string]*tokenBucket

// newToolLimits returns the default limits. Simulation is the expensive
// call, so it gets the smallest burst.
func newToolLimits() toolLimits {
	return toolLimits{
		"circuit_simulate": newTokenBucket(30, 5),
		"circuit_validate": newTokenBucket(60, 10),
		"circuit_history":  newTokenBucket(60, 10),
	}
}

// check returns an error when tool is over its limit. Tools without a
// bucket are never limited.
func (l toolLimits) check(tool string) error {
	b, ok := l[tool]
	if !ok || b.take() {
		return nil
	}
	return fmt.Errorf("rate limit exceeded for %s, please try again shortly", tool)
}
