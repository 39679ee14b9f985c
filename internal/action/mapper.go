package action

import (
	"sync"

	"github.com/pleimann/glide-pad/internal/gesture"
)

// Mapper maps gesture action names to key sequences based on configuration
type Mapper struct {
	mu      sync.RWMutex
	actions map[string][]string // action name -> keys
}

// NewMapper creates a new action mapper from the actions section of the
// configuration.
func NewMapper(actions map[string][]string) *Mapper {
	m := &Mapper{actions: make(map[string][]string)}
	m.Reload(actions)
	return m
}

// Map returns the key sequence for an action name, or nil if not mapped
func (m *Mapper) Map(name string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.actions[name]
}

// Reload replaces the mappings with new configuration
func (m *Mapper) Reload(actions map[string][]string) {
	next := make(map[string][]string, len(actions))
	for name, keys := range actions {
		next[name] = append([]string(nil), keys...)
	}

	m.mu.Lock()
	m.actions = next
	m.mu.Unlock()
}

// SwipeAction returns the action name for a swipe direction.
func SwipeAction(dir gesture.Direction) string {
	switch dir {
	case gesture.DirectionLeft:
		return "swipe_left"
	case gesture.DirectionRight:
		return "swipe_right"
	case gesture.DirectionUp:
		return "swipe_up"
	default:
		return "swipe_down"
	}
}

// PinchAction returns the action name for a pinch scale. Scale below 1 is a
// pinch in, at or above 1 a pinch out.
func PinchAction(scale float64) string {
	if scale < 1 {
		return "pinch_in"
	}
	return "pinch_out"
}
