package configpush

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pleimann/glide-pad/internal/config"
)

func TestPushWritesToGivenMountPoint(t *testing.T) {
	cfg := &config.Config{
		Actions: map[string][]string{
			"tap": {"enter"},
		},
	}

	mountPoint := t.TempDir()
	if err := Push(cfg, mountPoint); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(mountPoint, "pad_config.py"))
	if err != nil {
		t.Fatalf("Reading pushed config failed: %v", err)
	}
	if !strings.Contains(string(content), `"tap": [[Keycode.ENTER]]`) {
		t.Errorf("Pushed config missing tap action.\n\nGenerated config:\n%s", content)
	}
}

func TestGeneratePythonConfig(t *testing.T) {
	threshold := 60.0
	duration := 500

	cfg := &config.Config{
		Gestures: config.Thresholds{
			Swipe:     &config.SwipeThresholds{ThresholdPx: &threshold},
			LongPress: &config.LongPressThresholds{DurationMs: &duration},
		},
		Actions: map[string][]string{
			"tap":          {"enter"},
			"pull_refresh": {"ctrl+r"},
			"long_press":   {"q", "enter"},
		},
	}

	content, err := GeneratePythonConfig(cfg)
	if err != nil {
		t.Fatalf("GeneratePythonConfig failed: %v", err)
	}

	expectedParts := []string{
		"from adafruit_hid.keycode import Keycode",
		"THRESHOLDS = {",
		`"swipe_threshold_px": 60`,
		`"long_press_duration_ms": 500`,
		"ACTIONS = {",
		`"tap": [[Keycode.ENTER]]`,
		`"pull_refresh": [[Keycode.CONTROL, Keycode.R]]`,
		`"long_press": [[Keycode.Q], [Keycode.ENTER]]`,
	}

	for _, part := range expectedParts {
		if !strings.Contains(content, part) {
			t.Errorf("Expected config to contain %q, but it didn't.\n\nGenerated config:\n%s", part, content)
		}
	}
}

func TestGeneratePythonConfigBadKey(t *testing.T) {
	cfg := &config.Config{
		Actions: map[string][]string{
			"tap": {"not_a_key"},
		},
	}

	if _, err := GeneratePythonConfig(cfg); err == nil {
		t.Error("GeneratePythonConfig accepted an unmappable key")
	}
}

func TestParseKeyToKeycodes(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
		wantErr  bool
	}{
		{"a", []string{"A"}, false},
		{"enter", []string{"ENTER"}, false},
		{"ctrl+c", []string{"CONTROL", "C"}, false},
		{"ctrl+shift+z", []string{"CONTROL", "SHIFT", "Z"}, false},
		{"alt+f4", []string{"ALT", "F4"}, false},
		{"cmd+q", []string{"GUI", "Q"}, false},
		{"`", []string{"GRAVE_ACCENT"}, false},
		{"1", []string{"ONE"}, false},
		{"pageup", []string{"PAGE_UP"}, false},
		{"invalid_key", nil, true},
		{"foo+a", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseKeyToKeycodes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseKeyToKeycodes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if len(result) != len(tt.expected) {
					t.Errorf("ParseKeyToKeycodes(%q) = %v, want %v", tt.input, result, tt.expected)
					return
				}
				for i, v := range result {
					if v != tt.expected[i] {
						t.Errorf("ParseKeyToKeycodes(%q)[%d] = %v, want %v", tt.input, i, v, tt.expected[i])
					}
				}
			}
		})
	}
}
