// Package ratelimit throttles unauthenticated booking traffic. The
// policy is an interface so a single instance can run on the in-memory
// store while multi-instance deployments share state through Redis.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type Policy interface {
	// Allow consumes one request for key and reports whether it fits
	// inside the current window.
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryPolicy is a fixed-window counter guarded by a mutex. Windows are
// pruned lazily on access.
type MemoryPolicy struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	count   int
	resetAt time.Time
}

func NewMemoryPolicy(limit int, window time.Duration) *MemoryPolicy {
	return &MemoryPolicy{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (p *MemoryPolicy) Allow(_ context.Context, key string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	b, ok := p.buckets[key]
	if !ok || now.After(b.resetAt) {
		p.buckets[key] = &bucket{count: 1, resetAt: now.Add(p.window)}
		return true, nil
	}

	if b.count >= p.limit {
		return false, nil
	}
	b.count++
	return true, nil
}

var _ Policy = (*MemoryPolicy)(nil)
