// Package ratelimit implements per-requester sliding-window admission
// control for inbound score requests.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits at most max requests per requester within a trailing
// window. A disabled limiter admits everything. Windows are pruned lazily on
// every check; Cleanup reclaims memory for requesters that went quiet.
type Limiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	enabled  bool
	now      func() time.Time
	requests map[string][]time.Time
}

func New(max int, window time.Duration, enabled bool) *Limiter {
	return &Limiter{
		max:      max,
		window:   window,
		enabled:  enabled,
		now:      time.Now,
		requests: make(map[string][]time.Time),
	}
}

// Allow reports whether requesterID may make a request now, and records the
// request if admitted.
func (l *Limiter) Allow(requesterID string) bool {
	if !l.enabled {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	window := l.pruneLocked(requesterID, now.Add(-l.window))
	if len(window) >= l.max {
		return false
	}
	l.requests[requesterID] = append(window, now)
	return true
}

// Cleanup prunes every window and drops requesters whose window is empty.
// It never changes an admission decision, it only reclaims memory, so it is
// safe to run from a timer while Allow is being called.
func (l *Limiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for id := range l.requests {
		if len(l.pruneLocked(id, cutoff)) == 0 {
			delete(l.requests, id)
		}
	}
}

// pruneLocked drops timestamps at or before cutoff and returns the remaining
// window. Caller must hold mu.
func (l *Limiter) pruneLocked(requesterID string, cutoff time.Time) []time.Time {
	window := l.requests[requesterID]
	kept := window[:0]
	for _, ts := range window {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 && window != nil {
		l.requests[requesterID] = nil
		return nil
	}
	l.requests[requesterID] = kept
	return kept
}

// Tracked returns the number of requesters currently holding a window,
// for metrics and tests.
func (l *Limiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, w := range l.requests {
		if len(w) > 0 {
			n++
		}
	}
	return n
}
