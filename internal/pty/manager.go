package pty

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/creack/pty"

	"github.com/pleimann/glide-pad/internal/action"
)

// outputBufferSize is how much recent TUI output is kept for status parsing.
const outputBufferSize = 4096

var ansiEscapes = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]|\x1b\][^\x07]*\x07`)

// Manager manages a PTY and the TUI process running in it
type Manager struct {
	command    string
	args       []string
	workingDir string

	mu   sync.Mutex
	ptmx *os.File
	cmd  *exec.Cmd

	outputMu     sync.RWMutex
	outputBuffer *RingBuffer
}

// NewManager creates a new PTY manager
func NewManager(command string, args []string, workingDir string) (*Manager, error) {
	if command == "" {
		return nil, fmt.Errorf("command is required")
	}

	return &Manager{
		command:      command,
		args:         args,
		workingDir:   workingDir,
		outputBuffer: NewRingBuffer(outputBufferSize),
	}, nil
}

// Start starts the TUI process in a PTY
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := exec.CommandContext(ctx, m.command, m.args...)
	if m.workingDir != "" {
		cmd.Dir = m.workingDir
	}
	cmd.Env = os.Environ()

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start PTY: %w", err)
	}

	m.ptmx = ptmx
	m.cmd = cmd

	go m.readOutput(ctx)

	// Reap the process when it exits.
	go func() {
		m.cmd.Wait()
	}()

	return nil
}

// Stop stops the TUI process and closes the PTY
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd != nil && m.cmd.Process != nil {
		m.cmd.Process.Signal(os.Interrupt)
		m.cmd.Process.Wait()
	}

	if m.ptmx != nil {
		m.ptmx.Close()
		m.ptmx = nil
	}
}

// readOutput reads from the PTY and stores output in the ring buffer
func (m *Manager) readOutput(ctx context.Context) {
	buf := make([]byte, 1024)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		m.mu.Lock()
		ptmx := m.ptmx
		m.mu.Unlock()

		if ptmx == nil {
			return
		}

		n, err := ptmx.Read(buf)
		if err != nil {
			if err == io.EOF {
				return
			}
			continue
		}

		if n > 0 {
			m.outputMu.Lock()
			m.outputBuffer.Write(buf[:n])
			m.outputMu.Unlock()
		}
	}
}

// WriteKey writes a key press to the PTY
func (m *Manager) WriteKey(key action.KeyPress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ptmx == nil {
		return fmt.Errorf("PTY not started")
	}

	data := key.ToBytes()
	if data == nil {
		return fmt.Errorf("could not convert key to bytes")
	}

	_, err := m.ptmx.Write(data)
	return err
}

// WriteString writes a string to the PTY
func (m *Manager) WriteString(s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ptmx == nil {
		return fmt.Errorf("PTY not started")
	}

	_, err := m.ptmx.WriteString(s)
	return err
}

// GetRecentOutput returns recent output from the TUI
func (m *Manager) GetRecentOutput() string {
	m.outputMu.RLock()
	defer m.outputMu.RUnlock()
	return m.outputBuffer.String()
}

// StatusLine returns the last non-empty line of TUI output with terminal
// escape sequences stripped.
func (m *Manager) StatusLine() string {
	output := ansiEscapes.ReplaceAllString(m.GetRecentOutput(), "")

	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(strings.Trim(lines[i], "\r\x00"))
		if line != "" {
			return line
		}
	}
	return ""
}

// Resize resizes the PTY window
func (m *Manager) Resize(rows, cols uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ptmx == nil {
		return fmt.Errorf("PTY not started")
	}

	return pty.Setsize(m.ptmx, &pty.Winsize{
		Rows: rows,
		Cols: cols,
	})
}

// IsRunning returns whether the TUI process is running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd == nil || m.cmd.Process == nil {
		return false
	}

	return m.cmd.ProcessState == nil || !m.cmd.ProcessState.Exited()
}
