package gesture

import "testing"

func TestTypeString(t *testing.T) {
	tests := []struct {
		gt   Type
		want string
	}{
		{TypeTap, "tap"},
		{TypeDoubleTap, "double_tap"},
		{TypeSwipe, "swipe"},
		{TypeLongPress, "long_press"},
		{TypePinch, "pinch"},
		{TypePullRefresh, "pull_refresh"},
		{Type(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.gt.String(); got != tt.want {
				t.Errorf("Type.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{DirectionLeft, "left"},
		{DirectionRight, "right"},
		{DirectionUp, "up"},
		{DirectionDown, "down"},
		{Direction(9), "unknown(9)"},
	}

	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Direction.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEventKindString(t *testing.T) {
	tests := []struct {
		k    EventKind
		want string
	}{
		{TouchStart, "touchstart"},
		{TouchMove, "touchmove"},
		{TouchEnd, "touchend"},
		{TouchCancel, "touchcancel"},
	}

	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("EventKind.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestHandlersMerge(t *testing.T) {
	var tapA, tapB, swipeA int

	base := Handlers{
		Tap:   func(TapEvent) { tapA++ },
		Swipe: func(SwipeEvent) { swipeA++ },
	}
	merged := base.merge(Handlers{Tap: func(TapEvent) { tapB++ }})

	merged.Tap(TapEvent{})
	merged.Swipe(SwipeEvent{})

	if tapA != 0 || tapB != 1 {
		t.Errorf("tap routed to old=%d new=%d, want old untouched", tapA, tapB)
	}
	if swipeA != 1 {
		t.Errorf("swipe handler lost in merge")
	}
	if merged.DoubleTap != nil {
		t.Errorf("merge invented a double tap handler")
	}
}
