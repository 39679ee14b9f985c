package gesture

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Swipe.Threshold != 50 || cfg.Swipe.Timeout != 300*time.Millisecond {
		t.Errorf("swipe defaults = %+v, want 50px/300ms", cfg.Swipe)
	}
	if cfg.Tap.MaxDistance != 10 || cfg.Tap.MaxDuration != 250*time.Millisecond {
		t.Errorf("tap defaults = %+v, want 10px/250ms", cfg.Tap)
	}
	if cfg.DoubleTap.Timeout != 300*time.Millisecond || cfg.DoubleTap.MaxDistance != 30 {
		t.Errorf("double tap defaults = %+v, want 300ms/30px", cfg.DoubleTap)
	}
	if cfg.LongPress.Duration != 500*time.Millisecond || cfg.LongPress.MaxMove != 10 {
		t.Errorf("long press defaults = %+v, want 500ms/10px", cfg.LongPress)
	}
	if cfg.Pinch.Threshold != 10 {
		t.Errorf("pinch default = %+v, want 10px", cfg.Pinch)
	}
	if cfg.Pull.ReleaseThreshold != 80 {
		t.Errorf("pull default = %+v, want 80px", cfg.Pull)
	}
}

func TestApplyEmptyDelta(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Apply(Delta{}); got != cfg {
		t.Errorf("empty delta changed config: %+v", got)
	}
}

func TestApplyPartialGroup(t *testing.T) {
	cfg := DefaultConfig()
	threshold := 120.0
	got := cfg.Apply(Delta{Swipe: &SwipeDelta{Threshold: &threshold}})

	if got.Swipe.Threshold != 120 {
		t.Errorf("swipe.threshold = %v, want 120", got.Swipe.Threshold)
	}
	// Unspecified key within the touched group keeps its prior value.
	if got.Swipe.Timeout != cfg.Swipe.Timeout {
		t.Errorf("swipe.timeout = %v, want unchanged %v", got.Swipe.Timeout, cfg.Swipe.Timeout)
	}
	// Untouched groups keep their prior values.
	if got.Tap != cfg.Tap || got.LongPress != cfg.LongPress {
		t.Errorf("untouched groups changed: %+v", got)
	}
}

func TestApplyAllGroups(t *testing.T) {
	cfg := DefaultConfig()
	f := func(v float64) *float64 { return &v }
	d := func(v time.Duration) *time.Duration { return &v }

	got := cfg.Apply(Delta{
		Swipe:     &SwipeDelta{Threshold: f(60), Timeout: d(400 * time.Millisecond)},
		Tap:       &TapDelta{MaxDistance: f(15), MaxDuration: d(200 * time.Millisecond)},
		DoubleTap: &DoubleTapDelta{Timeout: d(250 * time.Millisecond), MaxDistance: f(20)},
		LongPress: &LongPressDelta{Duration: d(700 * time.Millisecond), MaxMove: f(12)},
		Pinch:     &PinchDelta{Threshold: f(8)},
		Pull:      &PullDelta{ReleaseThreshold: f(100)},
	})

	want := Config{
		Swipe:     SwipeConfig{Threshold: 60, Timeout: 400 * time.Millisecond},
		Tap:       TapConfig{MaxDistance: 15, MaxDuration: 200 * time.Millisecond},
		DoubleTap: DoubleTapConfig{Timeout: 250 * time.Millisecond, MaxDistance: 20},
		LongPress: LongPressConfig{Duration: 700 * time.Millisecond, MaxMove: 12},
		Pinch:     PinchConfig{Threshold: 8},
		Pull:      PullConfig{ReleaseThreshold: 100},
	}
	if got != want {
		t.Errorf("Apply = %+v, want %+v", got, want)
	}
}
