package service

import (
	"math/rand/v2"
	"time"
)

// BackoffPolicy spaces out webhook delivery attempts. The delay before attempt
// n+1 is Base·2^(n-1) with equal jitter, so it lands in [d/2, d]. Both ends of
// that range are clamped to Cap, and the result is raised to Floor.
//
// The lower end of each range is the upper end of the one before it, so the
// delay never shrinks from one attempt to the next. Once d/2 reaches Cap every
// delay is exactly Cap.
type BackoffPolicy struct {
	Base  time.Duration
	Floor time.Duration
	Cap   time.Duration

	// Jitter returns a value in [0, n). It defaults to math/rand/v2.
	Jitter func(n int64) int64
}

// Next returns the delay to wait after the given number of failed attempts.
// attempt is 1-based, lower values are treated as 1.
func (b BackoffPolicy) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := b.Base
	for i := 1; i < attempt && delay > 0 && delay/2 < b.Cap; i++ {
		delay *= 2
	}

	low, high := min(delay/2, b.Cap), min(delay, b.Cap)

	jitter := b.Jitter
	if jitter == nil {
		jitter = rand.Int64N
	}
	delay = low + time.Duration(jitter(int64(high-low)+1))

	return max(delay, b.Floor)
}
