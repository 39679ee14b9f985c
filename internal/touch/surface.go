package touch

import (
	"log"
	"sync"
	"time"

	"github.com/pleimann/glide-pad/internal/gesture"
)

// EventSurface adapts the pad's touch report stream to the gesture.Surface
// contract: listener registration with removable handles, a scroll offset
// provider for pull-to-refresh gating, and native gesture control forwarded
// to the device.
type EventSurface struct {
	mu        sync.Mutex
	listeners map[gesture.ListenerID]registration
	nextID    gesture.ListenerID
	scrollFn  func() float64
	nativeFn  func(enabled bool) error
}

type registration struct {
	kind gesture.EventKind
	fn   func(gesture.Event)
}

// NewEventSurface creates a surface with no listeners. Without a scroll
// provider the surface reports offset zero, which treats the pad as an
// unscrolled view.
func NewEventSurface() *EventSurface {
	return &EventSurface{listeners: make(map[gesture.ListenerID]registration)}
}

// SetScrollProvider installs the scroll offset reader consulted during
// pull-to-refresh evaluation.
func (s *EventSurface) SetScrollProvider(fn func() float64) {
	s.mu.Lock()
	s.scrollFn = fn
	s.mu.Unlock()
}

// SetNativeGestureFunc installs the hook that forwards native gesture toggles
// to the device, typically Device.SetNativeGestures.
func (s *EventSurface) SetNativeGestureFunc(fn func(enabled bool) error) {
	s.mu.Lock()
	s.nativeFn = fn
	s.mu.Unlock()
}

// AddListener registers fn for events of the given kind.
func (s *EventSurface) AddListener(kind gesture.EventKind, fn func(gesture.Event)) gesture.ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.listeners[s.nextID] = registration{kind: kind, fn: fn}
	return s.nextID
}

// RemoveListener drops a registration. Removing an unknown ID is a no-op.
func (s *EventSurface) RemoveListener(id gesture.ListenerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// ScrollOffset reports the host view's current vertical scroll position.
func (s *EventSurface) ScrollOffset() float64 {
	s.mu.Lock()
	fn := s.scrollFn
	s.mu.Unlock()

	if fn == nil {
		return 0
	}
	return fn()
}

// SetNativeGestures forwards the toggle to the device when a hook is
// installed.
func (s *EventSurface) SetNativeGestures(enabled bool) {
	s.mu.Lock()
	fn := s.nativeFn
	s.mu.Unlock()

	if fn == nil {
		return
	}
	if err := fn(enabled); err != nil {
		log.Printf("touch: failed to set native gestures: %v", err)
	}
}

// Deliver converts a decoded report to a gesture event and fans it out to the
// listeners registered for its phase.
func (s *EventSurface) Deliver(r *Report) {
	ev := gesture.Event{
		Kind:   phaseKind(r.Phase),
		Points: contactPoints(r.Contacts),
		Time:   time.Now(),
	}

	s.mu.Lock()
	var fns []func(gesture.Event)
	for _, reg := range s.listeners {
		if reg.kind == ev.Kind {
			fns = append(fns, reg.fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func phaseKind(p Phase) gesture.EventKind {
	switch p {
	case PhaseDown:
		return gesture.TouchStart
	case PhaseMove:
		return gesture.TouchMove
	case PhaseUp:
		return gesture.TouchEnd
	default:
		return gesture.TouchCancel
	}
}

func contactPoints(contacts []Contact) []gesture.Point {
	points := make([]gesture.Point, len(contacts))
	for i, c := range contacts {
		points[i] = gesture.Point{X: float64(c.X), Y: float64(c.Y)}
	}
	return points
}
