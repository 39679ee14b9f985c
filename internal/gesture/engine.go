package gesture

import (
	"log"
	"math"
	"sync"
	"time"
)

// Engine converts the raw touch event stream of one Surface into semantic
// gestures and dispatches them to the configured handlers. At most one
// handler fires per physical gesture; ambiguous or unrecognized sequences
// dispatch nothing. All state is owned by the engine instance; there is no
// global or cross-instance state.
//
// Event processing is synchronous in the caller. The mutex exists because the
// two deferred timers (long-press fire, double-tap expiry) run on timer
// goroutines and must observe consistent state.
type Engine struct {
	mu        sync.Mutex
	surface   Surface
	handlers  Handlers
	config    Config
	listeners []ListenerID
	destroyed bool

	session *session

	pending      *pendingDoubleTap
	pendingTimer *deferred
}

// call is a handler invocation prepared under the lock and run outside it, so
// a handler may safely call back into the engine.
type call struct {
	name string
	fn   func()
}

// NewEngine attaches a new engine to the surface. The delta is applied over
// the built-in default thresholds; a zero Delta keeps them all. The surface's
// native gesture handling is disabled for the lifetime of the engine.
func NewEngine(surface Surface, handlers Handlers, delta Delta) *Engine {
	e := &Engine{
		surface:  surface,
		handlers: handlers,
		config:   DefaultConfig().Apply(delta),
	}
	surface.SetNativeGestures(false)
	e.listeners = []ListenerID{
		surface.AddListener(TouchStart, e.handleStart),
		surface.AddListener(TouchMove, e.handleMove),
		surface.AddListener(TouchEnd, e.handleEnd),
		surface.AddListener(TouchCancel, e.handleCancel),
	}
	return e
}

// UpdateHandlers replaces the callbacks for which h carries a non-nil value;
// all others keep their current binding.
func (e *Engine) UpdateHandlers(h Handlers) {
	e.mu.Lock()
	e.handlers = e.handlers.merge(h)
	e.mu.Unlock()
}

// UpdateConfig merges a partial threshold override into the current
// configuration. Overrides are cumulative across the engine's lifetime and
// take effect with the next incoming event; an already-armed long-press timer
// keeps the duration it was armed with.
func (e *Engine) UpdateConfig(d Delta) {
	e.mu.Lock()
	e.config = e.config.Apply(d)
	e.mu.Unlock()
}

// Config returns a snapshot of the current thresholds.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// Destroy detaches the engine from its surface, cancels all live timers and
// restores the surface's native gesture handling. It is idempotent.
func (e *Engine) Destroy() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.destroyed = true
	e.resetSessionLocked()
	e.clearPendingLocked()
	ids := e.listeners
	e.listeners = nil
	surface := e.surface
	e.mu.Unlock()

	for _, id := range ids {
		surface.RemoveListener(id)
	}
	surface.SetNativeGestures(true)
}

// handleStart ingests a touchstart. An empty point list is ignored. A second
// contact during a single-touch session promotes it to multi-touch tracking;
// any other start discards leftover state and begins a fresh session.
func (e *Engine) handleStart(ev Event) {
	e.mu.Lock()
	if e.destroyed || len(ev.Points) == 0 {
		e.mu.Unlock()
		return
	}
	at := eventTime(ev)

	if s := e.session; s != nil {
		// A fired long press owns the session until release; a late second
		// finger must not re-open it for classification.
		if s.mode == modeLongPressArmed {
			e.mu.Unlock()
			return
		}
		if s.mode != modeTrackingMulti && len(ev.Points) >= 2 {
			s.cancelLongPress()
			s.mode = modeTrackingMulti
			s.baseline = dist(ev.Points[0], ev.Points[1])
			s.lastPoints = clonePoints(ev.Points)
			s.lastTime = at
			e.mu.Unlock()
			return
		}
	}

	e.resetSessionLocked()
	s := newSession(ev.Points, at)
	e.session = s
	if len(ev.Points) >= 2 {
		s.mode = modeTrackingMulti
		s.baseline = dist(ev.Points[0], ev.Points[1])
	} else {
		e.armLongPressLocked(s)
	}
	e.mu.Unlock()
}

// handleMove ingests a touchmove: updates the session's last points, cancels
// the long-press timer once the contact drifts too far, and drives the two
// continuous gestures, pinch and pull-to-refresh.
func (e *Engine) handleMove(ev Event) {
	var calls []call
	e.mu.Lock()
	s := e.session
	if e.destroyed || s == nil || len(ev.Points) == 0 {
		e.mu.Unlock()
		return
	}
	s.lastPoints = clonePoints(ev.Points)
	s.lastTime = eventTime(ev)

	switch s.mode {
	case modeTrackingMulti:
		if len(ev.Points) >= 2 {
			current := dist(ev.Points[0], ev.Points[1])
			if math.Abs(current-s.baseline) > e.config.Pinch.Threshold {
				pe := PinchEvent{
					Scale:  pinchScale(s.baseline, current),
					Center: centroid(ev.Points[:2]),
				}
				if h := e.handlers.Pinch; h != nil {
					calls = append(calls, call{"pinch", func() { h(pe) }})
				}
			}
		}

	case modeTracking, modePullTracking:
		if s.displacement() > e.config.LongPress.MaxMove {
			s.cancelLongPress()
		}
		dy := ev.Points[0].Y - s.startPoints[0].Y
		if len(ev.Points) == 1 && dy > 0 && e.surface.ScrollOffset() == 0 {
			s.mode = modePullTracking
			s.pulled = true
			s.pullProgress = pullProgress(e.config.Pull, dy)
			pe := PullEvent{Progress: s.pullProgress}
			if h := e.handlers.PullToRefresh; h != nil {
				calls = append(calls, call{"pull_to_refresh", func() { h(pe) }})
			}
		}

	case modeLongPressArmed:
		// Long press already fired; nothing left to track until release.
	}
	e.mu.Unlock()

	e.run(calls)
}

// handleEnd finalizes classification and destroys the session. Classifier
// priority: a fired long press suppresses everything, then tap (merging into
// a pending double-tap when one qualifies), then swipe, then pull release.
func (e *Engine) handleEnd(ev Event) {
	var calls []call
	e.mu.Lock()
	s := e.session
	if e.destroyed || s == nil {
		e.mu.Unlock()
		return
	}
	at := eventTime(ev)
	end := s.endPoint(ev)
	dx := end.X - s.startPoints[0].X
	dy := end.Y - s.startPoints[0].Y
	distance := math.Hypot(dx, dy)
	duration := at.Sub(s.startTime)

	switch {
	case s.mode == modeLongPressArmed:
		// Release after a fired long press: reset only.

	case s.mode == modeTrackingMulti:
		// Multi-touch sessions end silently; pinch streams during moves and
		// the discrete classifiers are single-touch gestures.

	case isTap(e.config.Tap, distance, duration):
		if isDoubleTap(e.config.DoubleTap, e.pending, end, at) {
			e.clearPendingLocked()
			te := TapEvent{X: end.X, Y: end.Y, Time: at}
			if h := e.handlers.DoubleTap; h != nil {
				calls = append(calls, call{"double_tap", func() { h(te) }})
			}
		} else {
			te := TapEvent{X: end.X, Y: end.Y, Time: at}
			if h := e.handlers.Tap; h != nil {
				calls = append(calls, call{"tap", func() { h(te) }})
			}
			e.armPendingLocked(end, at)
		}

	default:
		if se, ok := classifySwipe(e.config.Swipe, dx, dy, duration); ok {
			if h := e.handlers.Swipe; h != nil {
				calls = append(calls, call{"swipe", func() { h(se) }})
			}
		} else if s.pulled {
			pe := PullReleaseEvent{
				Progress:  s.pullProgress,
				Triggered: s.pullProgress >= 1,
			}
			if h := e.handlers.PullRelease; h != nil {
				calls = append(calls, call{"pull_release", func() { h(pe) }})
			}
		}
	}

	e.resetSessionLocked()
	e.mu.Unlock()

	e.run(calls)
}

// handleCancel discards the session and every pending timer without
// dispatching anything. Gestures already dispatched are not retracted.
func (e *Engine) handleCancel(Event) {
	e.mu.Lock()
	e.resetSessionLocked()
	e.clearPendingLocked()
	e.mu.Unlock()
}

// armLongPressLocked schedules the long-press fire for the session. The
// callback validates handle identity and mode under the lock, so a fire
// racing any reset path is a no-op.
func (e *Engine) armLongPressLocked(s *session) {
	var t *deferred
	t = after(e.config.LongPress.Duration, func() { e.fireLongPress(s, t) })
	s.longPress = t
}

func (e *Engine) fireLongPress(s *session, t *deferred) {
	e.mu.Lock()
	if e.destroyed || e.session != s || s.longPress != t || s.mode != modeTracking {
		e.mu.Unlock()
		return
	}
	s.longPress = nil
	s.mode = modeLongPressArmed
	start := s.startPoints[0]
	h := e.handlers.LongPress
	e.mu.Unlock()

	if h != nil {
		e.dispatch("long_press", func() {
			h(TapEvent{X: start.X, Y: start.Y, Time: time.Now()})
		})
	}
}

// armPendingLocked records a dispatched tap and schedules its invalidation.
// The expiry callback only clears the record it was scheduled against.
func (e *Engine) armPendingLocked(p Point, at time.Time) {
	e.pendingTimer.cancel()
	e.pending = &pendingDoubleTap{point: p, time: at}
	var t *deferred
	t = after(e.config.DoubleTap.Timeout, func() { e.expirePending(t) })
	e.pendingTimer = t
}

func (e *Engine) expirePending(t *deferred) {
	e.mu.Lock()
	if e.pendingTimer == t {
		e.pending = nil
		e.pendingTimer = nil
	}
	e.mu.Unlock()
}

// resetSessionLocked destroys the session, cancelling its long-press timer.
func (e *Engine) resetSessionLocked() {
	if e.session != nil {
		e.session.cancelLongPress()
		e.session = nil
	}
}

// clearPendingLocked destroys the pending double-tap record and its timer.
func (e *Engine) clearPendingLocked() {
	e.pendingTimer.cancel()
	e.pendingTimer = nil
	e.pending = nil
}

func (e *Engine) run(calls []call) {
	for _, c := range calls {
		e.dispatch(c.name, c.fn)
	}
}

// dispatch runs a single handler invocation, isolating panics so one broken
// handler cannot corrupt engine state or suppress later gestures.
func (e *Engine) dispatch(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("gesture: %s handler panicked: %v", name, r)
		}
	}()
	fn()
}

func eventTime(ev Event) time.Time {
	if ev.Time.IsZero() {
		return time.Now()
	}
	return ev.Time
}
