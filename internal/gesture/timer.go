package gesture

import "time"

// deferred is a cancellable handle for a scheduled one-shot callback.
// Cancelling a handle that already fired, or cancelling twice, is a no-op.
// Stop cannot halt a callback that has already started, so every callback
// must validate its own liveness against engine state before acting; the
// engine does this by checking handle identity under its lock, which makes a
// stale fire after a reset a guaranteed no-op.
type deferred struct {
	timer *time.Timer
}

// after schedules fn to run once after d and returns its handle.
func after(d time.Duration, fn func()) *deferred {
	return &deferred{timer: time.AfterFunc(d, fn)}
}

// cancel stops the timer if it has not fired yet.
func (t *deferred) cancel() {
	if t != nil && t.timer != nil {
		t.timer.Stop()
	}
}
