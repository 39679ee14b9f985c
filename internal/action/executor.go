package action

import (
	"fmt"
)

// KeyWriter is the interface for writing key sequences
type KeyWriter interface {
	WriteKey(key KeyPress) error
}

// Executor executes key sequences
type Executor struct {
	writer KeyWriter
}

// NewExecutor creates a new action executor
func NewExecutor(writer KeyWriter) *Executor {
	return &Executor{writer: writer}
}

// Execute executes a sequence of key strings
func (e *Executor) Execute(keys []string) error {
	for _, keyStr := range keys {
		key, err := ParseKey(keyStr)
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", keyStr, err)
		}
		if err := e.writer.WriteKey(key); err != nil {
			return fmt.Errorf("failed to write key %q: %w", keyStr, err)
		}
	}
	return nil
}
