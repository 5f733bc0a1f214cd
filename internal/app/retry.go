package app

import "time"

// RetryPolicy bounds rate-limit retries for a single asset. Delays grow
// geometrically from BaseDelay by Multiplier per attempt, so the produced
// sequence never decreases.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy matches what the emoji.add endpoint tolerates in
// practice: three attempts with doubling delays starting at one second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2}
}

// Delay returns the wait after the given failed attempt, counted from 1.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := float64(p.BaseDelay)
	for i := 1; i < attempt; i++ {
		d *= p.Multiplier
	}
	return time.Duration(d)
}
