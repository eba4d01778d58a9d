// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit spaces out requests to the remote server with a fixed
// base delay plus Gaussian jitter.
package ratelimit

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// Defaults for the politeness delay.
const (
	DefaultDelay  = 3 * time.Second
	DefaultJitter = 500 * time.Millisecond
)

// Limiter is consulted before every outgoing request.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real-clock Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Jittered waits base + N(0, jitter²) before every call except the first.
// The drawn delay is floored at zero and re-drawn on each call. It is safe
// for concurrent use; concurrent callers are serialized.
type Jittered struct {
	base   time.Duration
	jitter time.Duration

	mu      sync.Mutex
	rng     *rand.Rand
	sleep   Sleeper
	started bool
}

// Option configures a Jittered limiter.
type Option func(*Jittered)

// WithRand sets the random source used for jitter.
func WithRand(r *rand.Rand) Option {
	return func(j *Jittered) { j.rng = r }
}

// WithSleeper replaces the real clock, typically with a recording fake.
func WithSleeper(s Sleeper) Option {
	return func(j *Jittered) { j.sleep = s }
}

// NewJittered returns a limiter for cfg. A zero Delay or Jitter in cfg is
// taken literally; callers apply defaults before.
func NewJittered(cfg types.RateLimitConfig, opts ...Option) *Jittered {
	j := &Jittered{
		base:   cfg.Delay,
		jitter: cfg.Jitter,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5c401a)),
		sleep:  Sleep,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Wait returns immediately on the first call and otherwise sleeps for a
// freshly drawn delay.
func (j *Jittered) Wait(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.started {
		j.started = true
		return ctx.Err()
	}
	return j.sleep(ctx, j.next())
}

// next draws one delay. Callers hold j.mu.
func (j *Jittered) next() time.Duration {
	d := j.base + time.Duration(j.rng.NormFloat64()*float64(j.jitter))
	if d < 0 {
		return 0
	}
	return d
}
