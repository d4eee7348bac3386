package worker

import "time"

// RetryPolicy controls redelivery of failed notification messages.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryPolicy is tuned for Telegram delivery: a short first retry
// and a low cap, so a flaky network never parks a message for long.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		InitialDelay:  2 * time.Second,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2,
	}
}

// withDefaults fills unset fields from DefaultRetryPolicy, so callers can
// override just the knobs they care about.
func (r RetryPolicy) withDefaults() RetryPolicy {
	def := DefaultRetryPolicy()
	if r.MaxRetries == 0 {
		r.MaxRetries = def.MaxRetries
	}
	if r.InitialDelay == 0 {
		r.InitialDelay = def.InitialDelay
	}
	if r.MaxDelay == 0 {
		r.MaxDelay = def.MaxDelay
	}
	if r.BackoffFactor == 0 {
		r.BackoffFactor = def.BackoffFactor
	}
	return r
}

// NextDelay returns the pause before the given attempt (1-based), growing
// by BackoffFactor each attempt and clamped at MaxDelay.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	initial := r.InitialDelay
	if initial <= 0 {
		initial = time.Second
	}
	factor := r.BackoffFactor
	if factor <= 0 {
		factor = 2
	}

	delay := initial
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * factor)
		if r.MaxDelay > 0 && delay >= r.MaxDelay {
			return r.MaxDelay
		}
	}
	if delay <= 0 {
		return time.Second
	}
	return delay
}
