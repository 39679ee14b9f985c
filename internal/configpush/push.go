package configpush

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pleimann/glide-pad/internal/config"
)

// FindCIRCUITPY locates the mounted CIRCUITPY drive of a CircuitPython
// touch pad.
func FindCIRCUITPY() (string, error) {
	candidates := []string{
		"/Volumes/CIRCUITPY",
	}

	if user := os.Getenv("USER"); user != "" {
		candidates = append(candidates,
			filepath.Join("/media", user, "CIRCUITPY"),
			filepath.Join("/run/media", user, "CIRCUITPY"),
		)
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path, nil
		}
	}

	return "", fmt.Errorf("CIRCUITPY drive not found; is the pad connected in setup mode?")
}

// Push generates the firmware config and writes it to the given CIRCUITPY
// mount point, as returned by FindCIRCUITPY.
func Push(cfg *config.Config, mountPoint string) error {
	content, err := GeneratePythonConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to generate firmware config: %w", err)
	}

	target := filepath.Join(mountPoint, "pad_config.py")
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	return nil
}

// GeneratePythonConfig converts the YAML config into the CircuitPython
// config module the pad firmware imports.
func GeneratePythonConfig(cfg *config.Config) (string, error) {
	var b strings.Builder

	b.WriteString("# Generated by glide-pad config-push. Do not edit by hand.\n")
	b.WriteString("from adafruit_hid.keycode import Keycode\n\n")

	b.WriteString("THRESHOLDS = {\n")
	for _, entry := range thresholdEntries(cfg.Gestures) {
		b.WriteString(fmt.Sprintf("    %q: %s,\n", entry.key, entry.value))
	}
	b.WriteString("}\n\n")

	b.WriteString("ACTIONS = {\n")

	names := make([]string, 0, len(cfg.Actions))
	for name := range cfg.Actions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sequences, err := keySequences(cfg.Actions[name])
		if err != nil {
			return "", fmt.Errorf("action %q: %w", name, err)
		}
		b.WriteString(fmt.Sprintf("    %q: %s,\n", name, sequences))
	}
	b.WriteString("}\n")

	return b.String(), nil
}

type thresholdEntry struct {
	key   string
	value string
}

func thresholdEntries(t config.Thresholds) []thresholdEntry {
	var entries []thresholdEntry

	addFloat := func(key string, v *float64) {
		if v != nil {
			entries = append(entries, thresholdEntry{key, fmt.Sprintf("%g", *v)})
		}
	}
	addInt := func(key string, v *int) {
		if v != nil {
			entries = append(entries, thresholdEntry{key, fmt.Sprintf("%d", *v)})
		}
	}

	if t.Swipe != nil {
		addFloat("swipe_threshold_px", t.Swipe.ThresholdPx)
		addInt("swipe_timeout_ms", t.Swipe.TimeoutMs)
	}
	if t.Tap != nil {
		addFloat("tap_max_distance_px", t.Tap.MaxDistancePx)
		addInt("tap_max_duration_ms", t.Tap.MaxDurationMs)
	}
	if t.DoubleTap != nil {
		addInt("double_tap_timeout_ms", t.DoubleTap.TimeoutMs)
		addFloat("double_tap_max_distance_px", t.DoubleTap.MaxDistancePx)
	}
	if t.LongPress != nil {
		addInt("long_press_duration_ms", t.LongPress.DurationMs)
		addFloat("long_press_max_move_px", t.LongPress.MaxMovePx)
	}
	if t.Pinch != nil {
		addFloat("pinch_threshold_px", t.Pinch.ThresholdPx)
	}
	if t.Pull != nil {
		addFloat("pull_release_threshold_px", t.Pull.ReleaseThresholdPx)
	}

	return entries
}

// keySequences renders a key list as a Python list of Keycode lists, one
// inner list per key press.
func keySequences(keys []string) (string, error) {
	var sequences []string

	for _, key := range keys {
		keycodes, err := ParseKeyToKeycodes(key)
		if err != nil {
			return "", err
		}

		refs := make([]string, len(keycodes))
		for i, kc := range keycodes {
			refs[i] = "Keycode." + kc
		}
		sequences = append(sequences, "["+strings.Join(refs, ", ")+"]")
	}

	return "[" + strings.Join(sequences, ", ") + "]", nil
}

// ParseKeyToKeycodes converts a key string like "ctrl+shift+c" into
// adafruit_hid Keycode constant names.
func ParseKeyToKeycodes(s string) ([]string, error) {
	var keycodes []string

	parts := strings.Split(strings.ToLower(s), "+")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if i == len(parts)-1 {
			kc, ok := keycodeName(part)
			if !ok {
				return nil, fmt.Errorf("no keycode for key %q", part)
			}
			keycodes = append(keycodes, kc)
			break
		}

		switch part {
		case "ctrl", "control":
			keycodes = append(keycodes, "CONTROL")
		case "alt", "option":
			keycodes = append(keycodes, "ALT")
		case "shift":
			keycodes = append(keycodes, "SHIFT")
		case "meta", "cmd", "command", "win", "super":
			keycodes = append(keycodes, "GUI")
		default:
			return nil, fmt.Errorf("unknown modifier: %s", part)
		}
	}

	if len(keycodes) == 0 {
		return nil, fmt.Errorf("no key specified")
	}

	return keycodes, nil
}

var digitNames = map[byte]string{
	'0': "ZERO", '1': "ONE", '2': "TWO", '3': "THREE", '4': "FOUR",
	'5': "FIVE", '6': "SIX", '7': "SEVEN", '8': "EIGHT", '9': "NINE",
}

var punctuationNames = map[byte]string{
	'`':  "GRAVE_ACCENT",
	'-':  "MINUS",
	'=':  "EQUALS",
	'[':  "LEFT_BRACKET",
	']':  "RIGHT_BRACKET",
	'\\': "BACKSLASH",
	';':  "SEMICOLON",
	'\'': "QUOTE",
	',':  "COMMA",
	'.':  "PERIOD",
	'/':  "FORWARD_SLASH",
	' ':  "SPACE",
}

var specialNames = map[string]string{
	"enter":     "ENTER",
	"return":    "RETURN",
	"tab":       "TAB",
	"esc":       "ESCAPE",
	"escape":    "ESCAPE",
	"space":     "SPACE",
	"backspace": "BACKSPACE",
	"delete":    "DELETE",
	"del":       "DELETE",
	"insert":    "INSERT",
	"ins":       "INSERT",
	"home":      "HOME",
	"end":       "END",
	"pageup":    "PAGE_UP",
	"pgup":      "PAGE_UP",
	"pagedown":  "PAGE_DOWN",
	"pgdn":      "PAGE_DOWN",
	"up":        "UP_ARROW",
	"down":      "DOWN_ARROW",
	"left":      "LEFT_ARROW",
	"right":     "RIGHT_ARROW",
	"f1":        "F1",
	"f2":        "F2",
	"f3":        "F3",
	"f4":        "F4",
	"f5":        "F5",
	"f6":        "F6",
	"f7":        "F7",
	"f8":        "F8",
	"f9":        "F9",
	"f10":       "F10",
	"f11":       "F11",
	"f12":       "F12",
}

func keycodeName(key string) (string, bool) {
	if name, ok := specialNames[key]; ok {
		return name, true
	}

	if len(key) == 1 {
		c := key[0]
		if c >= 'a' && c <= 'z' {
			return strings.ToUpper(key), true
		}
		if name, ok := digitNames[c]; ok {
			return name, true
		}
		if name, ok := punctuationNames[c]; ok {
			return name, true
		}
	}

	return "", false
}
