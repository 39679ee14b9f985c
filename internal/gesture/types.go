package gesture

import (
	"fmt"
	"time"
)

// Point is a touch position in surface coordinates.
type Point struct {
	X float64
	Y float64
}

// EventKind identifies the phase of a raw touch event.
type EventKind int

const (
	TouchStart EventKind = iota
	TouchMove
	TouchEnd
	TouchCancel
)

func (k EventKind) String() string {
	switch k {
	case TouchStart:
		return "touchstart"
	case TouchMove:
		return "touchmove"
	case TouchEnd:
		return "touchend"
	case TouchCancel:
		return "touchcancel"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Event is one normalized touch event delivered by a Surface. Points is the
// ordered list of active contacts; position in the list is significant for
// single versus multi-touch transitions. A zero Time means "now".
type Event struct {
	Kind   EventKind
	Points []Point
	Time   time.Time
}

// Type identifies a recognized gesture, used for action mapping and display.
type Type int

const (
	TypeTap Type = iota
	TypeDoubleTap
	TypeSwipe
	TypeLongPress
	TypePinch
	TypePullRefresh
)

func (t Type) String() string {
	switch t {
	case TypeTap:
		return "tap"
	case TypeDoubleTap:
		return "double_tap"
	case TypeSwipe:
		return "swipe"
	case TypeLongPress:
		return "long_press"
	case TypePinch:
		return "pinch"
	case TypePullRefresh:
		return "pull_refresh"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Direction is the dominant axis direction of a swipe.
type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// TapEvent is the payload for tap, double-tap and long-press handlers.
type TapEvent struct {
	X    float64
	Y    float64
	Time time.Time
}

// SwipeEvent is the payload for a recognized swipe.
type SwipeEvent struct {
	Direction Direction
	DistanceX float64
	DistanceY float64
	Duration  time.Duration
	Velocity  float64 // total distance over duration, pixels per second
}

// PinchEvent is the payload for a pinch update. Scale is cumulative from the
// gesture's starting baseline distance, not incremental per move, so callers
// can drive a zoom transform directly without accumulating error.
type PinchEvent struct {
	Scale  float64
	Center Point
}

// PullEvent reports pull-to-refresh progress, clamped to [0,1].
type PullEvent struct {
	Progress float64
}

// PullReleaseEvent reports the end of a pull interaction. Triggered is true
// when the pull reached the release threshold.
type PullReleaseEvent struct {
	Progress  float64
	Triggered bool
}

// Handlers holds the optional callback per gesture. A nil callback suppresses
// dispatch for that gesture and is not an error. Every callback fires at most
// once per physical gesture except PullToRefresh and Pinch, which may fire
// repeatedly while their gesture is in progress.
type Handlers struct {
	Tap           func(TapEvent)
	DoubleTap     func(TapEvent)
	Swipe         func(SwipeEvent)
	LongPress     func(TapEvent)
	Pinch         func(PinchEvent)
	PullToRefresh func(PullEvent)
	PullRelease   func(PullReleaseEvent)
}

// merge returns h with every non-nil callback of o replacing the existing one.
func (h Handlers) merge(o Handlers) Handlers {
	if o.Tap != nil {
		h.Tap = o.Tap
	}
	if o.DoubleTap != nil {
		h.DoubleTap = o.DoubleTap
	}
	if o.Swipe != nil {
		h.Swipe = o.Swipe
	}
	if o.LongPress != nil {
		h.LongPress = o.LongPress
	}
	if o.Pinch != nil {
		h.Pinch = o.Pinch
	}
	if o.PullToRefresh != nil {
		h.PullToRefresh = o.PullToRefresh
	}
	if o.PullRelease != nil {
		h.PullRelease = o.PullRelease
	}
	return h
}

// ListenerID identifies a registered listener on a Surface.
type ListenerID int

// Surface is a touch-capable event source the engine attaches to. ScrollOffset
// reports the host surface's current vertical scroll position, consulted while
// a pull-to-refresh candidate is evaluated; it must be safe to call from event
// processing. SetNativeGestures toggles any gesture handling the surface
// performs on its own; the engine disables it while attached so native
// scrolling or zooming cannot race recognition.
type Surface interface {
	AddListener(kind EventKind, fn func(Event)) ListenerID
	RemoveListener(id ListenerID)
	ScrollOffset() float64
	SetNativeGestures(enabled bool)
}
