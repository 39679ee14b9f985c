package display

import (
	"context"
	"sync"
	"time"

	"github.com/pleimann/glide-pad/internal/config"
	"github.com/pleimann/glide-pad/internal/touch"
)

// gestureHold is how long a recognized gesture stays on screen.
const gestureHold = 2 * time.Second

// DeviceWriter is the interface for sending frames to the device
type DeviceWriter interface {
	SendFrame(frame *touch.DisplayFrame) error
}

// StatusSource provides a one-line status from the TUI for tui_status regions.
type StatusSource interface {
	StatusLine() string
}

// Manager manages the OLED display, orchestrating rendering and updates
type Manager struct {
	config   config.Display
	device   DeviceWriter
	renderer *Renderer
	encoder  *FrameEncoder
	status   StatusSource

	mu           sync.Mutex
	regions      map[string]*regionState
	pullProgress float64
	gestureTimer *time.Timer
	cancel       context.CancelFunc
}

type regionState struct {
	config  config.Region
	content string
	dirty   bool
}

// NewManager creates a new display manager
func NewManager(cfg config.Display, device DeviceWriter, status StatusSource) *Manager {
	m := &Manager{
		config:   cfg,
		device:   device,
		renderer: NewRenderer(cfg.Width, cfg.Height),
		encoder:  NewFrameEncoder(cfg.Width, cfg.Height),
		status:   status,
		regions:  make(map[string]*regionState),
	}

	for _, regionCfg := range cfg.Regions {
		m.regions[regionCfg.Name] = &regionState{
			config:  regionCfg,
			content: regionCfg.Content, // Static content from config
			dirty:   true,
		}
	}

	return m
}

// Start starts the display update loop
func (m *Manager) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)

	interval := time.Duration(m.config.UpdateIntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.update()
			}
		}
	}()
}

// Stop stops the display update loop and clears the screen
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}

	m.mu.Lock()
	if m.gestureTimer != nil {
		m.gestureTimer.Stop()
	}
	m.mu.Unlock()

	if m.device != nil {
		m.device.SendFrame(m.encoder.EncodeClear())
	}
}

// SetGesture shows the name of a recognized gesture. The name clears itself
// after a short hold.
func (m *Manager) SetGesture(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setSourceLocked("gesture", name)

	if m.gestureTimer != nil {
		m.gestureTimer.Stop()
	}
	m.gestureTimer = time.AfterFunc(gestureHold, func() {
		m.mu.Lock()
		m.setSourceLocked("gesture", "")
		m.mu.Unlock()
	})
}

// SetPullProgress updates pull regions with the current pull-to-refresh
// progress in [0,1]. Zero hides the bar.
func (m *Manager) SetPullProgress(progress float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pullProgress == progress {
		return
	}
	m.pullProgress = progress

	for _, region := range m.regions {
		if region.config.Source == "pull" {
			region.dirty = true
		}
	}
}

// SetRegionContent sets the content of a named region
func (m *Manager) SetRegionContent(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if region, ok := m.regions[name]; ok {
		if region.content != content {
			region.content = content
			region.dirty = true
		}
	}
}

// ForceRefresh marks all regions as dirty so the next cycle redraws everything
func (m *Manager) ForceRefresh() {
	m.mu.Lock()
	for _, region := range m.regions {
		region.dirty = true
	}
	m.mu.Unlock()
}

func (m *Manager) setSourceLocked(source, content string) {
	for _, region := range m.regions {
		if region.config.Source == source && region.content != content {
			region.content = content
			region.dirty = true
		}
	}
}

// update performs a display update cycle
func (m *Manager) update() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != nil {
		m.setSourceLocked("tui_status", m.status.StatusLine())
	}

	needsRender := false
	for _, region := range m.regions {
		if region.dirty {
			needsRender = true
			break
		}
	}

	if !needsRender {
		return
	}

	m.renderer.Clear()
	for _, region := range m.regions {
		m.renderRegion(region)
		region.dirty = false
	}

	frameData := m.renderer.GetFrameBuffer()
	for _, frame := range m.encoder.ChunkFrame(frameData) {
		if err := m.device.SendFrame(frame); err != nil {
			// A failed chunk leaves a stale band until the next redraw.
			continue
		}
	}
}

// renderRegion renders a single region to the frame buffer
func (m *Manager) renderRegion(region *regionState) {
	cfg := region.config

	switch cfg.Source {
	case "pull":
		if m.pullProgress > 0 {
			barHeight := cfg.Height - 4
			if barHeight < 4 {
				barHeight = cfg.Height
			}
			m.renderer.DrawProgressBar(cfg.X+2, cfg.Y+2, cfg.Width-4, barHeight, m.pullProgress)
		}

	default:
		// gesture, tui_status, static
		textY := cfg.Y + 12 // Account for font baseline
		m.renderer.DrawTextWrapped(cfg.X+2, textY, cfg.Width-4, region.content)
	}
}
