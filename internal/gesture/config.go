package gesture

import "time"

// SwipeConfig bounds swipe recognition.
type SwipeConfig struct {
	Threshold float64       // minimum travel, px
	Timeout   time.Duration // maximum duration
}

// TapConfig bounds tap recognition.
type TapConfig struct {
	MaxDistance float64
	MaxDuration time.Duration
}

// DoubleTapConfig bounds the window merging two taps into a double-tap.
type DoubleTapConfig struct {
	Timeout     time.Duration
	MaxDistance float64
}

// LongPressConfig bounds long-press recognition.
type LongPressConfig struct {
	Duration time.Duration
	MaxMove  float64
}

// PinchConfig bounds pinch recognition.
type PinchConfig struct {
	Threshold float64 // distance change from baseline before reporting, px
}

// PullConfig bounds pull-to-refresh recognition.
type PullConfig struct {
	ReleaseThreshold float64 // downward travel required to trigger, px
}

// Config holds the per-gesture threshold groups for one engine instance.
type Config struct {
	Swipe     SwipeConfig
	Tap       TapConfig
	DoubleTap DoubleTapConfig
	LongPress LongPressConfig
	Pinch     PinchConfig
	Pull      PullConfig
}

// DefaultConfig returns the built-in thresholds.
func DefaultConfig() Config {
	return Config{
		Swipe:     SwipeConfig{Threshold: 50, Timeout: 300 * time.Millisecond},
		Tap:       TapConfig{MaxDistance: 10, MaxDuration: 250 * time.Millisecond},
		DoubleTap: DoubleTapConfig{Timeout: 300 * time.Millisecond, MaxDistance: 30},
		LongPress: LongPressConfig{Duration: 500 * time.Millisecond, MaxMove: 10},
		Pinch:     PinchConfig{Threshold: 10},
		Pull:      PullConfig{ReleaseThreshold: 80},
	}
}

// Delta is a partial configuration override. Nil groups and nil fields leave
// the current values untouched, so overrides accumulate across the engine's
// lifetime instead of resetting to the built-in defaults.
type Delta struct {
	Swipe     *SwipeDelta
	Tap       *TapDelta
	DoubleTap *DoubleTapDelta
	LongPress *LongPressDelta
	Pinch     *PinchDelta
	Pull      *PullDelta
}

type SwipeDelta struct {
	Threshold *float64
	Timeout   *time.Duration
}

type TapDelta struct {
	MaxDistance *float64
	MaxDuration *time.Duration
}

type DoubleTapDelta struct {
	Timeout     *time.Duration
	MaxDistance *float64
}

type LongPressDelta struct {
	Duration *time.Duration
	MaxMove  *float64
}

type PinchDelta struct {
	Threshold *float64
}

type PullDelta struct {
	ReleaseThreshold *float64
}

// Apply returns c with every set field of d merged in.
func (c Config) Apply(d Delta) Config {
	if d.Swipe != nil {
		setFloat(&c.Swipe.Threshold, d.Swipe.Threshold)
		setDuration(&c.Swipe.Timeout, d.Swipe.Timeout)
	}
	if d.Tap != nil {
		setFloat(&c.Tap.MaxDistance, d.Tap.MaxDistance)
		setDuration(&c.Tap.MaxDuration, d.Tap.MaxDuration)
	}
	if d.DoubleTap != nil {
		setDuration(&c.DoubleTap.Timeout, d.DoubleTap.Timeout)
		setFloat(&c.DoubleTap.MaxDistance, d.DoubleTap.MaxDistance)
	}
	if d.LongPress != nil {
		setDuration(&c.LongPress.Duration, d.LongPress.Duration)
		setFloat(&c.LongPress.MaxMove, d.LongPress.MaxMove)
	}
	if d.Pinch != nil {
		setFloat(&c.Pinch.Threshold, d.Pinch.Threshold)
	}
	if d.Pull != nil {
		setFloat(&c.Pull.ReleaseThreshold, d.Pull.ReleaseThreshold)
	}
	return c
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *time.Duration) {
	if src != nil {
		*dst = *src
	}
}
