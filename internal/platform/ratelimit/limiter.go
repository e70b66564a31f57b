// Package ratelimit provides an in-memory sliding window admission limiter
// keyed by (client, endpoint). State is process local; with multiple instances
// each instance bounds only its own traffic
package ratelimit

import (
	"sync"
	"sync/atomic"
	"time"
)

// Window is the trailing interval used for admission decisions
const Window = 60 * time.Second

// RetryAfterSeconds is the fixed retry hint callers should surface on rejection
const RetryAfterSeconds = 60

// compactEvery bounds how often the key map is swept for fully stale entries
const compactEvery = 100

type key struct {
	client   string
	endpoint string
}

// bucket holds the request timestamps for one key
// each bucket has its own lock so admission on one key never waits on another
type bucket struct {
	mu     sync.Mutex
	stamps []time.Time
}

// prune drops stamps outside the trailing window; callers must hold mu
func (b *bucket) prune(cutoff time.Time) {
	keep := b.stamps[:0]
	for _, ts := range b.stamps {
		if ts.After(cutoff) {
			keep = append(keep, ts)
		}
	}
	b.stamps = keep
}

// Limiter is a concurrency safe sliding window limiter
// the zero value is not usable, construct with New
type Limiter struct {
	mu      sync.RWMutex
	buckets map[key]*bucket
	admits  atomic.Int64
}

// New constructs an empty Limiter
func New() *Limiter {
	return &Limiter{buckets: make(map[key]*bucket)}
}

// Admit reports whether a request from client against endpoint is within
// limit requests per trailing window as of now. Admitted requests are recorded;
// rejected requests are not
func (l *Limiter) Admit(client, endpoint string, limit int, now time.Time) bool {
	if limit <= 0 {
		return true
	}
	b := l.bucket(key{client: client, endpoint: endpoint})

	b.mu.Lock()
	b.prune(now.Add(-Window))
	if len(b.stamps) >= limit {
		b.mu.Unlock()
		return false
	}
	b.stamps = append(b.stamps, now)
	b.mu.Unlock()

	if l.admits.Add(1)%compactEvery == 0 {
		l.compact(now)
	}
	return true
}

// Len reports the number of tracked keys, for tests and introspection
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

func (l *Limiter) bucket(k key) *bucket {
	l.mu.RLock()
	b := l.buckets[k]
	l.mu.RUnlock()
	if b != nil {
		return b
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if b = l.buckets[k]; b == nil {
		b = &bucket{}
		l.buckets[k] = b
	}
	return b
}

// compact removes keys whose windows are fully stale so the map does not grow
// unbounded under churny client addresses. Pruning happens per key under that
// key's lock; the map write lock is only taken for the final deletes
func (l *Limiter) compact(now time.Time) {
	cutoff := now.Add(-Window)

	l.mu.RLock()
	snapshot := make([]key, 0, len(l.buckets))
	for k := range l.buckets {
		snapshot = append(snapshot, k)
	}
	l.mu.RUnlock()

	var stale []key
	for _, k := range snapshot {
		l.mu.RLock()
		b := l.buckets[k]
		l.mu.RUnlock()
		if b == nil {
			continue
		}
		b.mu.Lock()
		b.prune(cutoff)
		empty := len(b.stamps) == 0
		b.mu.Unlock()
		if empty {
			stale = append(stale, k)
		}
	}
	if len(stale) == 0 {
		return
	}

	l.mu.Lock()
	for _, k := range stale {
		b := l.buckets[k]
		if b == nil {
			continue
		}
		// re-check under the bucket lock; a concurrent Admit may have landed
		b.mu.Lock()
		if len(b.stamps) == 0 {
			delete(l.buckets, k)
		}
		b.mu.Unlock()
	}
	l.mu.Unlock()
}
