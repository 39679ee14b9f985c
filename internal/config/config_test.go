package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
device:
  vendor_id: 0x1234
  product_id: 0x5678
  poll_interval_ms: 20

gestures:
  swipe:
    threshold_px: 60
    timeout_ms: 400
  long_press:
    duration_ms: 700

tui:
  command: "test-app"
  args: ["--flag", "value"]
  working_dir: "/tmp"
  key_delay_ms: 5

actions:
  tap: ["enter"]
  swipe_left: ["left"]
  pull_refresh: ["ctrl+r"]

display:
  width: 128
  height: 64
  update_interval_ms: 50
  regions:
    - name: gesture
      x: 0
      y: 0
      width: 128
      height: 24
      source: gesture
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Device.VendorID != 0x1234 || cfg.Device.ProductID != 0x5678 {
		t.Errorf("device = %+v, want 0x1234:0x5678", cfg.Device)
	}
	if cfg.Device.PollIntervalMs != 20 {
		t.Errorf("poll interval = %d, want 20", cfg.Device.PollIntervalMs)
	}
	if cfg.TUI.Command != "test-app" || len(cfg.TUI.Args) != 2 {
		t.Errorf("tui = %+v", cfg.TUI)
	}
	if cfg.TUI.KeyDelayMs != 5 {
		t.Errorf("key delay = %d, want 5", cfg.TUI.KeyDelayMs)
	}
	if got := cfg.Actions["tap"]; len(got) != 1 || got[0] != "enter" {
		t.Errorf("tap action = %v, want [enter]", got)
	}
	if len(cfg.Display.Regions) != 1 || cfg.Display.Regions[0].Name != "gesture" {
		t.Errorf("regions = %+v", cfg.Display.Regions)
	}

	if cfg.Gestures.Swipe == nil || *cfg.Gestures.Swipe.ThresholdPx != 60 {
		t.Errorf("swipe thresholds = %+v, want threshold 60", cfg.Gestures.Swipe)
	}
	if cfg.Gestures.Tap != nil {
		t.Errorf("tap thresholds = %+v, want nil for an unset group", cfg.Gestures.Tap)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
device:
  vendor_id: 0x1234
  product_id: 0x5678
tui:
  command: "app"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Device.PollIntervalMs != 10 {
		t.Errorf("poll interval = %d, want default 10", cfg.Device.PollIntervalMs)
	}
	if cfg.Display.Width != 128 || cfg.Display.Height != 64 {
		t.Errorf("display = %dx%d, want default 128x64", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.UpdateIntervalMs != 100 {
		t.Errorf("update interval = %d, want default 100", cfg.Display.UpdateIntervalMs)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing vendor id",
			content: "device:\n  product_id: 0x5678\ntui:\n  command: app\n",
			wantErr: "vendor_id",
		},
		{
			name:    "missing product id",
			content: "device:\n  vendor_id: 0x1234\ntui:\n  command: app\n",
			wantErr: "product_id",
		},
		{
			name:    "missing tui command",
			content: "device:\n  vendor_id: 0x1234\n  product_id: 0x5678\n",
			wantErr: "tui.command",
		},
		{
			name: "unknown action",
			content: "device:\n  vendor_id: 0x1234\n  product_id: 0x5678\n" +
				"tui:\n  command: app\nactions:\n  triple_tap: [\"enter\"]\n",
			wantErr: "unknown gesture action",
		},
		{
			name: "empty action keys",
			content: "device:\n  vendor_id: 0x1234\n  product_id: 0x5678\n" +
				"tui:\n  command: app\nactions:\n  tap: []\n",
			wantErr: "no keys",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load succeeded, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestThresholdsDelta(t *testing.T) {
	threshold := 60.0
	timeout := 400
	duration := 700

	th := Thresholds{
		Swipe:     &SwipeThresholds{ThresholdPx: &threshold, TimeoutMs: &timeout},
		LongPress: &LongPressThresholds{DurationMs: &duration},
	}

	d := th.Delta()
	if d.Swipe == nil || *d.Swipe.Threshold != 60 {
		t.Errorf("swipe delta = %+v, want threshold 60", d.Swipe)
	}
	if *d.Swipe.Timeout != 400*time.Millisecond {
		t.Errorf("swipe timeout = %v, want 400ms", *d.Swipe.Timeout)
	}
	if d.LongPress == nil || *d.LongPress.Duration != 700*time.Millisecond {
		t.Errorf("long press delta = %+v, want 700ms", d.LongPress)
	}
	if d.LongPress.MaxMove != nil {
		t.Errorf("long press maxMove = %v, want nil for an unset key", d.LongPress.MaxMove)
	}
	if d.Tap != nil || d.DoubleTap != nil || d.Pinch != nil || d.Pull != nil {
		t.Errorf("unset groups produced deltas: %+v", d)
	}
}

func TestEmptyThresholdsDelta(t *testing.T) {
	d := Thresholds{}.Delta()
	if d != (Thresholds{}.Delta()) {
		t.Fatal("zero thresholds should convert to a stable zero delta")
	}
	if d.Swipe != nil || d.Tap != nil || d.DoubleTap != nil ||
		d.LongPress != nil || d.Pinch != nil || d.Pull != nil {
		t.Errorf("zero thresholds produced deltas: %+v", d)
	}
}

func TestUpdateDeviceIDs(t *testing.T) {
	path := writeConfig(t, `# keep this comment
device:
  vendor_id: 0x1111
  product_id: 2222
tui:
  command: app
`)

	if err := UpdateDeviceIDs(path, 0xABCD, 0x1234); err != nil {
		t.Fatalf("UpdateDeviceIDs failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "vendor_id: 0xABCD") {
		t.Errorf("vendor_id not rewritten:\n%s", content)
	}
	if !strings.Contains(content, "product_id: 0x1234") {
		t.Errorf("product_id not rewritten:\n%s", content)
	}
	if !strings.Contains(content, "# keep this comment") {
		t.Errorf("comment lost during rewrite:\n%s", content)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := CreateDefaultConfig(path, 0x1234, 0x5678); err != nil {
		t.Fatalf("CreateDefaultConfig failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Device.VendorID != 0x1234 || cfg.Device.ProductID != 0x5678 {
		t.Errorf("device = %+v, want 0x1234:0x5678", cfg.Device)
	}
	if len(cfg.Actions) == 0 {
		t.Error("generated config has no example actions")
	}
	if cfg.Gestures.Swipe == nil {
		t.Error("generated config has no example thresholds")
	}
}

func TestExists(t *testing.T) {
	path := writeConfig(t, "device: {}\n")
	if !Exists(path) {
		t.Error("Exists = false for a present file")
	}
	if Exists(filepath.Join(t.TempDir(), "nope.yaml")) {
		t.Error("Exists = true for a missing file")
	}
}
