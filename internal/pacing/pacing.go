// Package pacing implements the inter-request delay policies: a random
// jitter pause between discovery fetches and a per-host token bucket for
// extraction fetches.
package pacing

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Jitter pauses a random duration within [Min, Max] between requests so the
// target site never sees bursty traffic. Randomness is injectable so tests
// can run without real sleeping.
type Jitter struct {
	min time.Duration
	max time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewJitter builds a Jitter seeded from the wall clock.
func NewJitter(min, max time.Duration) *Jitter {
	return NewJitterWithSource(min, max, rand.NewSource(time.Now().UnixNano()))
}

// NewJitterWithSource builds a Jitter with a caller-supplied random source.
func NewJitterWithSource(min, max time.Duration, src rand.Source) *Jitter {
	if max < min {
		max = min
	}
	return &Jitter{
		min: min,
		max: max,
		rng: rand.New(src),
	}
}

// Pause blocks for the next jitter duration or until the context finishes.
func (j *Jitter) Pause(ctx context.Context) error {
	delay := j.next()
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

func (j *Jitter) next() time.Duration {
	j.mu.Lock()
	defer j.mu.Unlock()
	spread := j.max - j.min
	if spread <= 0 {
		return j.min
	}
	return j.min + time.Duration(j.rng.Int63n(int64(spread)+1))
}

// HostLimiter manages one token bucket per host so parallel extraction
// cannot exceed the per-host pacing budget.
type HostLimiter struct {
	mu           sync.Mutex
	limiters     map[string]*rate.Limiter
	defaultRate  rate.Limit
	defaultBurst int
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second per
// host. A non-positive rps disables limiting.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	r := rate.Limit(rps)
	if rps <= 0 {
		r = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &HostLimiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  r,
		defaultBurst: burst,
	}
}

// Wait blocks until a token is available for the URL's host, respecting the
// context.
func (l *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	host := "unknown"
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}

	l.mu.Lock()
	limiter, exists := l.limiters[host]
	if !exists {
		limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}
