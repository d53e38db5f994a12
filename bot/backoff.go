package bot

import "time"

// successThreshold is how long a stream session must survive before the
// failure counters reset. Sessions that die faster keep escalating.
const successThreshold = 30 * time.Second

const maxReconnectDelay = 300 * time.Second

// malformedSchedule escalates quickly when the server keeps sending frames
// we cannot decode, since reconnecting rarely fixes that.
var malformedSchedule = []time.Duration{
	2 * time.Second,
	30 * time.Second,
	60 * time.Second,
	300 * time.Second,
}

// backoff tracks consecutive stream failures in two classes. A generic
// failure (network, server hangup) clears the malformed counter because it
// says nothing about frame health, but malformed frames never clear the
// generic counter.
type backoff struct {
	base      time.Duration
	malformed int
	generic   int
}

func (b *backoff) nextMalformed() time.Duration {
	idx := b.malformed
	if idx >= len(malformedSchedule) {
		idx = len(malformedSchedule) - 1
	}
	b.malformed++
	return malformedSchedule[idx]
}

func (b *backoff) nextGeneric() time.Duration {
	b.malformed = 0
	var d time.Duration
	switch b.generic {
	case 0:
		d = b.base
	case 1:
		d = 2 * b.base
	default:
		d = maxReconnectDelay
	}
	if d > maxReconnectDelay {
		d = maxReconnectDelay
	}
	b.generic++
	return d
}

// observeSession resets both counters once a session has lived long enough
// to count as healthy.
func (b *backoff) observeSession(lived time.Duration) {
	if lived >= successThreshold {
		b.malformed = 0
		b.generic = 0
	}
}
