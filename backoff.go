package discordipc

import "time"

// backoff implements the reconnect policy of §4.2: start at a seed
// duration, double on each failure, clamp to a ceiling, and reset to the
// seed after a successful session.
type backoff struct {
	seed    time.Duration
	max     time.Duration
	current time.Duration
}

func newBackoff(seed, max time.Duration) *backoff {
	if seed <= 0 {
		seed = 500 * time.Millisecond
	}
	if max <= 0 {
		max = 60 * time.Second
	}
	return &backoff{seed: seed, max: max, current: seed}
}

// next returns the duration to sleep for this failure and advances state
// for the next call.
func (b *backoff) next() time.Duration {
	d := b.current
	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
	return d
}

// reset returns the policy to its seed duration after a successful connect.
func (b *backoff) reset() {
	b.current = b.seed
}
