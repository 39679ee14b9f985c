package gesture

import (
	"math"
	"time"
)

// dist is the Euclidean distance between two points.
func dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// centroid is the arithmetic mean of the given points.
func centroid(points []Point) Point {
	var c Point
	if len(points) == 0 {
		return c
	}
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(points))
	c.Y /= float64(len(points))
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// isTap reports whether a completed touch qualifies as a tap.
func isTap(cfg TapConfig, distance float64, duration time.Duration) bool {
	return distance <= cfg.MaxDistance && duration <= cfg.MaxDuration
}

// isDoubleTap reports whether a qualifying tap at p merges with the pending
// first tap into a double-tap.
func isDoubleTap(cfg DoubleTapConfig, pending *pendingDoubleTap, p Point, at time.Time) bool {
	if pending == nil {
		return false
	}
	return dist(pending.point, p) <= cfg.MaxDistance && at.Sub(pending.time) <= cfg.Timeout
}

// classifySwipe evaluates a completed touch against the swipe thresholds and
// returns the populated event when it qualifies.
func classifySwipe(cfg SwipeConfig, dx, dy float64, duration time.Duration) (SwipeEvent, bool) {
	distance := math.Hypot(dx, dy)
	if distance < cfg.Threshold || duration > cfg.Timeout {
		return SwipeEvent{}, false
	}
	velocity := 0.0
	if duration > 0 {
		velocity = distance / duration.Seconds()
	}
	return SwipeEvent{
		Direction: swipeDirection(dx, dy),
		DistanceX: dx,
		DistanceY: dy,
		Duration:  duration,
		Velocity:  velocity,
	}, true
}

// swipeDirection picks the direction from the sign of the dominant axis delta.
func swipeDirection(dx, dy float64) Direction {
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return DirectionLeft
		}
		return DirectionRight
	}
	if dy < 0 {
		return DirectionUp
	}
	return DirectionDown
}

// pinchScale is the cumulative scale factor relative to the session baseline.
func pinchScale(baseline, current float64) float64 {
	if baseline <= 0 {
		return 1
	}
	return current / baseline
}

// pullProgress maps downward travel to a [0,1] progress ratio against the
// release threshold.
func pullProgress(cfg PullConfig, dy float64) float64 {
	if cfg.ReleaseThreshold <= 0 {
		return 0
	}
	return clamp01(dy / cfg.ReleaseThreshold)
}
