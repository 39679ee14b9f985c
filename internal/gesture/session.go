package gesture

import (
	"fmt"
	"time"
)

// mode is the tracking state of an in-progress touch interaction.
type mode int

const (
	modeTracking mode = iota
	modeTrackingMulti
	modeLongPressArmed
	modePullTracking
)

func (m mode) String() string {
	switch m {
	case modeTracking:
		return "tracking"
	case modeTrackingMulti:
		return "tracking_multi"
	case modeLongPressArmed:
		return "long_press_armed"
	case modePullTracking:
		return "pull_tracking"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// session is the single mutable record of one in-progress physical touch
// interaction. It is created on the first touchstart, mutated on every
// touchmove and destroyed on touchend or touchcancel. At most one session
// exists per engine at any time.
type session struct {
	startPoints []Point
	startTime   time.Time
	lastPoints  []Point
	lastTime    time.Time
	mode        mode

	// pulled records that the session passed through pull tracking at least
	// once; pull release is only evaluated for such sessions.
	pulled       bool
	pullProgress float64

	// baseline is the two-contact distance recorded when the session was
	// promoted to multi-touch. Pinch scale is reported relative to it.
	baseline float64

	// longPress is the armed long-press timer, if any. Storing the handle on
	// the session lets every reset path cancel it deterministically.
	longPress *deferred
}

func newSession(points []Point, at time.Time) *session {
	return &session{
		startPoints: clonePoints(points),
		startTime:   at,
		lastPoints:  clonePoints(points),
		lastTime:    at,
		mode:        modeTracking,
	}
}

// cancelLongPress stops and discards the long-press timer if armed.
func (s *session) cancelLongPress() {
	s.longPress.cancel()
	s.longPress = nil
}

// displacement is the distance of the primary contact from its start point.
func (s *session) displacement() float64 {
	if len(s.startPoints) == 0 || len(s.lastPoints) == 0 {
		return 0
	}
	return dist(s.startPoints[0], s.lastPoints[0])
}

// endPoint picks the best known release position: the event's own point if it
// carries one, otherwise the last tracked point, otherwise the start point.
func (s *session) endPoint(ev Event) Point {
	if len(ev.Points) > 0 {
		return ev.Points[0]
	}
	if len(s.lastPoints) > 0 {
		return s.lastPoints[0]
	}
	return s.startPoints[0]
}

// pendingDoubleTap is the record of a dispatched tap awaiting a possible
// second tap. It is destroyed either by its expiry timer or by a second
// qualifying tap consuming it.
type pendingDoubleTap struct {
	point Point
	time  time.Time
}

func clonePoints(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	return out
}
