package action

import (
	"reflect"
	"testing"

	"github.com/pleimann/glide-pad/internal/gesture"
)

func TestMapperMap(t *testing.T) {
	mapper := NewMapper(map[string][]string{
		"tap":          {"enter"},
		"double_tap":   {"space"},
		"swipe_left":   {"left"},
		"long_press":   {"q", "enter"},
		"pull_refresh": {"ctrl+r"},
	})

	tests := []struct {
		name   string
		action string
		want   []string
	}{
		{"tap", "tap", []string{"enter"}},
		{"double tap", "double_tap", []string{"space"}},
		{"swipe left", "swipe_left", []string{"left"}},
		{"multi key long press", "long_press", []string{"q", "enter"}},
		{"pull refresh", "pull_refresh", []string{"ctrl+r"}},
		{"unmapped gesture", "swipe_up", nil},
		{"unknown name", "wiggle", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapper.Map(tt.action)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Map(%q) = %v, want %v", tt.action, got, tt.want)
			}
		})
	}
}

func TestMapperReload(t *testing.T) {
	mapper := NewMapper(map[string][]string{"tap": {"a"}})

	if got := mapper.Map("tap"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("initial Map() = %v, want [a]", got)
	}

	mapper.Reload(map[string][]string{"tap": {"b", "c"}})

	if got := mapper.Map("tap"); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("after Reload() Map() = %v, want [b c]", got)
	}
}

func TestMapperEmptyConfig(t *testing.T) {
	mapper := NewMapper(nil)

	if got := mapper.Map("tap"); got != nil {
		t.Errorf("Map() with empty config = %v, want nil", got)
	}
}

func TestSwipeAction(t *testing.T) {
	tests := []struct {
		dir  gesture.Direction
		want string
	}{
		{gesture.DirectionLeft, "swipe_left"},
		{gesture.DirectionRight, "swipe_right"},
		{gesture.DirectionUp, "swipe_up"},
		{gesture.DirectionDown, "swipe_down"},
	}

	for _, tt := range tests {
		if got := SwipeAction(tt.dir); got != tt.want {
			t.Errorf("SwipeAction(%v) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestPinchAction(t *testing.T) {
	if got := PinchAction(0.5); got != "pinch_in" {
		t.Errorf("PinchAction(0.5) = %q, want pinch_in", got)
	}
	if got := PinchAction(1.8); got != "pinch_out" {
		t.Errorf("PinchAction(1.8) = %q, want pinch_out", got)
	}
}
