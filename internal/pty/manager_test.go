package pty

import (
	"testing"
)

func TestRingBufferWrite(t *testing.T) {
	rb := NewRingBuffer(5)

	rb.Write([]byte("abc"))
	if got := rb.String(); got != "abc" {
		t.Errorf("String() = %q, want %q", got, "abc")
	}
}

func TestRingBufferOverwrite(t *testing.T) {
	rb := NewRingBuffer(5)

	// Write more than buffer size; only the tail survives.
	rb.Write([]byte("hello world"))

	if got := rb.String(); got != "world" {
		t.Errorf("String() = %q, want %q", got, "world")
	}
}

func TestRingBufferEmpty(t *testing.T) {
	rb := NewRingBuffer(5)
	if got := rb.String(); got != "" {
		t.Errorf("String() on empty buffer = %q, want empty", got)
	}
}

func TestRingBufferExactFit(t *testing.T) {
	rb := NewRingBuffer(5)
	rb.Write([]byte("12345"))

	if got := rb.String(); got != "12345" {
		t.Errorf("String() = %q, want %q", got, "12345")
	}
}

func TestRingBufferMultipleWrites(t *testing.T) {
	rb := NewRingBuffer(10)

	rb.Write([]byte("hello"))
	rb.Write([]byte(" "))
	rb.Write([]byte("world"))

	// 11 chars written to 10-byte buffer, keeps last 10: "ello world"
	if got := rb.String(); got != "ello world" {
		t.Errorf("String() = %q, want %q", got, "ello world")
	}
}

func TestNewManagerValidation(t *testing.T) {
	if _, err := NewManager("", nil, ""); err == nil {
		t.Error("NewManager() with empty command should return error")
	}

	m, err := NewManager("echo", []string{"test"}, "")
	if err != nil {
		t.Errorf("NewManager() error = %v", err)
	}
	if m == nil {
		t.Error("NewManager() returned nil")
	}
}

func TestManagerIsRunningBeforeStart(t *testing.T) {
	m, _ := NewManager("echo", []string{"test"}, "")

	if m.IsRunning() {
		t.Error("IsRunning() = true before Start(), want false")
	}
}

func TestManagerGetRecentOutputEmpty(t *testing.T) {
	m, _ := NewManager("echo", []string{"test"}, "")

	if got := m.GetRecentOutput(); got != "" {
		t.Errorf("GetRecentOutput() = %q, want empty", got)
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			name:   "last line wins",
			output: "first\nsecond\nready\n",
			want:   "ready",
		},
		{
			name:   "skips trailing blanks",
			output: "working\n\n  \n",
			want:   "working",
		},
		{
			name:   "strips color escapes",
			output: "\x1b[32mok\x1b[0m 3 items\n",
			want:   "ok 3 items",
		},
		{
			name:   "empty output",
			output: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := NewManager("echo", nil, "")
			m.outputBuffer.Write([]byte(tt.output))

			if got := m.StatusLine(); got != tt.want {
				t.Errorf("StatusLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
