// Package throttle provides per-key token bucket limiters built on golang.org/x/time/rate.
package throttle

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter keeps one token bucket per key (an email, a client IP).
// Buckets idle for longer than the idle window are evicted on access.
//
// Thread Safety: Safe for concurrent use.
type KeyedLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	every    time.Duration
	burst    int
	idle     time.Duration
	now      func() time.Time
	lastScan time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a limiter replenishing one token every interval, holding at most burst tokens
func New(every time.Duration, burst int) *KeyedLimiter {
	if burst < 1 {
		burst = 1
	}
	idle := every * time.Duration(burst) * 2
	if idle < time.Minute {
		idle = time.Minute
	}
	return &KeyedLimiter{
		buckets: make(map[string]*bucket),
		every:   every,
		burst:   burst,
		idle:    idle,
		now:     time.Now,
	}
}

// Allow takes a token from the key's bucket and reports whether one was available
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)
	b := l.get(key, now)
	return b.limiter.AllowN(now, 1)
}

// Remaining returns the whole tokens currently left for key
func (l *KeyedLimiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b := l.get(key, now)
	n := int(b.limiter.TokensAt(now))
	if n < 0 {
		return 0
	}
	return n
}

// Burst returns the bucket capacity
func (l *KeyedLimiter) Burst() int {
	return l.burst
}

func (l *KeyedLimiter) get(key string, now time.Time) *bucket {
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(l.every), l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

func (l *KeyedLimiter) evict(now time.Time) {
	if now.Sub(l.lastScan) < l.idle {
		return
	}
	l.lastScan = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.buckets, key)
		}
	}
}
