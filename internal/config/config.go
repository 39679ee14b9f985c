package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pleimann/glide-pad/internal/gesture"
)

type Config struct {
	Device   Device              `yaml:"device"`
	Gestures Thresholds          `yaml:"gestures"`
	TUI      TUI                 `yaml:"tui"`
	Actions  map[string][]string `yaml:"actions"`
	Display  Display             `yaml:"display"`
}

type Device struct {
	VendorID       uint16 `yaml:"vendor_id"`
	ProductID      uint16 `yaml:"product_id"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
}

// Thresholds mirrors the engine's per-gesture threshold groups. Every key is
// optional; unset keys keep the engine defaults, and on hot reload unset keys
// keep whatever the engine currently has.
type Thresholds struct {
	Swipe     *SwipeThresholds     `yaml:"swipe,omitempty"`
	Tap       *TapThresholds       `yaml:"tap,omitempty"`
	DoubleTap *DoubleTapThresholds `yaml:"double_tap,omitempty"`
	LongPress *LongPressThresholds `yaml:"long_press,omitempty"`
	Pinch     *PinchThresholds     `yaml:"pinch,omitempty"`
	Pull      *PullThresholds      `yaml:"pull,omitempty"`
}

type SwipeThresholds struct {
	ThresholdPx *float64 `yaml:"threshold_px,omitempty"`
	TimeoutMs   *int     `yaml:"timeout_ms,omitempty"`
}

type TapThresholds struct {
	MaxDistancePx *float64 `yaml:"max_distance_px,omitempty"`
	MaxDurationMs *int     `yaml:"max_duration_ms,omitempty"`
}

type DoubleTapThresholds struct {
	TimeoutMs     *int     `yaml:"timeout_ms,omitempty"`
	MaxDistancePx *float64 `yaml:"max_distance_px,omitempty"`
}

type LongPressThresholds struct {
	DurationMs *int     `yaml:"duration_ms,omitempty"`
	MaxMovePx  *float64 `yaml:"max_move_px,omitempty"`
}

type PinchThresholds struct {
	ThresholdPx *float64 `yaml:"threshold_px,omitempty"`
}

type PullThresholds struct {
	ReleaseThresholdPx *float64 `yaml:"release_threshold_px,omitempty"`
}

type TUI struct {
	Command    string   `yaml:"command"`
	Args       []string `yaml:"args"`
	WorkingDir string   `yaml:"working_dir,omitempty"`
	KeyDelayMs int      `yaml:"key_delay_ms,omitempty"`
}

type Display struct {
	Width            int      `yaml:"width"`
	Height           int      `yaml:"height"`
	UpdateIntervalMs int      `yaml:"update_interval_ms"`
	Regions          []Region `yaml:"regions,omitempty"`
}

type Region struct {
	Name    string `yaml:"name"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Source  string `yaml:"source"`
	Content string `yaml:"content,omitempty"`
}

// Gesture action names accepted under actions:.
var knownActions = map[string]bool{
	"tap":          true,
	"double_tap":   true,
	"swipe_left":   true,
	"swipe_right":  true,
	"swipe_up":     true,
	"swipe_down":   true,
	"long_press":   true,
	"pinch_in":     true,
	"pinch_out":    true,
	"pull_refresh": true,
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Device.VendorID == 0 {
		return fmt.Errorf("device.vendor_id is required")
	}
	if c.Device.ProductID == 0 {
		return fmt.Errorf("device.product_id is required")
	}
	if c.TUI.Command == "" {
		return fmt.Errorf("tui.command is required")
	}

	for name, keys := range c.Actions {
		if !knownActions[name] {
			return fmt.Errorf("unknown gesture action: %q", name)
		}
		if len(keys) == 0 {
			return fmt.Errorf("action %q has no keys", name)
		}
	}

	for i, region := range c.Display.Regions {
		if region.Name == "" {
			return fmt.Errorf("display region %d has no name", i)
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Device.PollIntervalMs == 0 {
		c.Device.PollIntervalMs = 10
	}
	if c.Display.Width == 0 {
		c.Display.Width = 128
	}
	if c.Display.Height == 0 {
		c.Display.Height = 64
	}
	if c.Display.UpdateIntervalMs == 0 {
		c.Display.UpdateIntervalMs = 100
	}
}

// Delta converts the file's optional threshold keys into an engine override.
// Only keys present in the file are carried; the engine keeps its current
// values for everything else.
func (t Thresholds) Delta() gesture.Delta {
	var d gesture.Delta
	if t.Swipe != nil {
		d.Swipe = &gesture.SwipeDelta{
			Threshold: t.Swipe.ThresholdPx,
			Timeout:   msPtr(t.Swipe.TimeoutMs),
		}
	}
	if t.Tap != nil {
		d.Tap = &gesture.TapDelta{
			MaxDistance: t.Tap.MaxDistancePx,
			MaxDuration: msPtr(t.Tap.MaxDurationMs),
		}
	}
	if t.DoubleTap != nil {
		d.DoubleTap = &gesture.DoubleTapDelta{
			Timeout:     msPtr(t.DoubleTap.TimeoutMs),
			MaxDistance: t.DoubleTap.MaxDistancePx,
		}
	}
	if t.LongPress != nil {
		d.LongPress = &gesture.LongPressDelta{
			Duration: msPtr(t.LongPress.DurationMs),
			MaxMove:  t.LongPress.MaxMovePx,
		}
	}
	if t.Pinch != nil {
		d.Pinch = &gesture.PinchDelta{Threshold: t.Pinch.ThresholdPx}
	}
	if t.Pull != nil {
		d.Pull = &gesture.PullDelta{ReleaseThreshold: t.Pull.ReleaseThresholdPx}
	}
	return d
}

func msPtr(ms *int) *time.Duration {
	if ms == nil {
		return nil
	}
	d := time.Duration(*ms) * time.Millisecond
	return &d
}

// UpdateDeviceIDs rewrites vendor_id and product_id in a config file while
// preserving the rest of the file structure and comments.
func UpdateDeviceIDs(path string, vendorID, productID uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	content := string(data)

	vendorRegex := regexp.MustCompile(`(?m)^(\s*vendor_id:\s*)(?:0x[0-9A-Fa-f]+|\d+)`)
	content = vendorRegex.ReplaceAllString(content, fmt.Sprintf("${1}0x%04X", vendorID))

	productRegex := regexp.MustCompile(`(?m)^(\s*product_id:\s*)(?:0x[0-9A-Fa-f]+|\d+)`)
	content = productRegex.ReplaceAllString(content, fmt.Sprintf("${1}0x%04X", productID))

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig writes a starter config for the given device.
func CreateDefaultConfig(path string, vendorID, productID uint16) error {
	content := fmt.Sprintf(`# Glide Pad Configuration

device:
  vendor_id: 0x%04X
  product_id: 0x%04X
  poll_interval_ms: 10

# Gesture thresholds. Unset keys keep the engine defaults.
gestures:
  swipe:
    threshold_px: 50
    timeout_ms: 300
  long_press:
    duration_ms: 500

tui:
  command: "your-tui-app"
  args: []

# Gesture to key-sequence mappings
actions:
  tap: ["enter"]
  swipe_left: ["left"]
  swipe_right: ["right"]
  swipe_up: ["pageup"]
  swipe_down: ["pagedown"]
  long_press: ["esc"]
  pull_refresh: ["ctrl+r"]

display:
  width: 128
  height: 64
  update_interval_ms: 100
  regions:
    - name: gesture
      x: 0
      y: 0
      width: 128
      height: 24
      source: gesture
    - name: pull
      x: 0
      y: 24
      width: 128
      height: 16
      source: pull
    - name: status
      x: 0
      y: 40
      width: 128
      height: 24
      source: tui_status
`, vendorID, productID)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// Exists checks if a config file exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
