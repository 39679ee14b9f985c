package touch

import (
	"sync"
	"testing"

	"github.com/pleimann/glide-pad/internal/gesture"
)

func TestSurfaceDeliverRoutesByKind(t *testing.T) {
	s := NewEventSurface()

	var mu sync.Mutex
	var starts, moves []gesture.Event

	s.AddListener(gesture.TouchStart, func(ev gesture.Event) {
		mu.Lock()
		starts = append(starts, ev)
		mu.Unlock()
	})
	s.AddListener(gesture.TouchMove, func(ev gesture.Event) {
		mu.Lock()
		moves = append(moves, ev)
		mu.Unlock()
	})

	s.Deliver(&Report{Phase: PhaseDown, Contacts: []Contact{{X: 100, Y: 200}}})
	s.Deliver(&Report{Phase: PhaseMove, Contacts: []Contact{{X: 110, Y: 210}}})

	mu.Lock()
	defer mu.Unlock()
	if len(starts) != 1 {
		t.Fatalf("start events = %d, want 1", len(starts))
	}
	if len(moves) != 1 {
		t.Fatalf("move events = %d, want 1", len(moves))
	}
	if starts[0].Kind != gesture.TouchStart {
		t.Errorf("kind = %v, want touchstart", starts[0].Kind)
	}
	if len(starts[0].Points) != 1 || starts[0].Points[0].X != 100 || starts[0].Points[0].Y != 200 {
		t.Errorf("points = %v, want [(100,200)]", starts[0].Points)
	}
	if starts[0].Time.IsZero() {
		t.Errorf("delivered event carries no timestamp")
	}
}

func TestSurfaceRemoveListener(t *testing.T) {
	s := NewEventSurface()

	calls := 0
	id := s.AddListener(gesture.TouchEnd, func(gesture.Event) { calls++ })

	s.Deliver(&Report{Phase: PhaseUp})
	s.RemoveListener(id)
	s.Deliver(&Report{Phase: PhaseUp})
	s.RemoveListener(id) // removing twice is a no-op

	if calls != 1 {
		t.Errorf("calls = %d, want 1 after removal", calls)
	}
}

func TestSurfaceScrollProvider(t *testing.T) {
	s := NewEventSurface()

	if got := s.ScrollOffset(); got != 0 {
		t.Errorf("default scroll offset = %v, want 0", got)
	}

	s.SetScrollProvider(func() float64 { return 42.5 })
	if got := s.ScrollOffset(); got != 42.5 {
		t.Errorf("scroll offset = %v, want 42.5", got)
	}
}

func TestSurfaceNativeGestureHook(t *testing.T) {
	s := NewEventSurface()

	// No hook installed: must not panic.
	s.SetNativeGestures(false)

	var toggles []bool
	s.SetNativeGestureFunc(func(enabled bool) error {
		toggles = append(toggles, enabled)
		return nil
	})
	s.SetNativeGestures(false)
	s.SetNativeGestures(true)

	if len(toggles) != 2 || toggles[0] != false || toggles[1] != true {
		t.Errorf("toggles = %v, want [false true]", toggles)
	}
}

func TestSurfaceCancelPhaseMapsToTouchCancel(t *testing.T) {
	s := NewEventSurface()

	got := -1
	s.AddListener(gesture.TouchCancel, func(ev gesture.Event) { got = int(ev.Kind) })
	s.Deliver(&Report{Phase: PhaseCancel})

	if got != int(gesture.TouchCancel) {
		t.Errorf("delivered kind = %d, want touchcancel", got)
	}
}
