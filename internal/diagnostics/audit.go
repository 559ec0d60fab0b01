// Package diagnostics logs parse attempts to an append-only JSON-lines
// file, so a CLI session can be replayed or audited after the fact.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ParseEvent is one line of the audit log: one Parse call, its
// outcome, and — on failure — the typed error kind and position.
type ParseEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Input     string    `json:"input"`
	Success   bool      `json:"success"`
	ErrorKind string    `json:"error_kind,omitempty"`
	Position  int       `json:"position,omitempty"`
	Canonical string    `json:"canonical,omitempty"`
}

// Logger is the contract a CLI session logs parse attempts through.
type Logger interface {
	LogEvent(event ParseEvent) error
	Close() error
}

// FileLogger appends ParseEvents to a file as newline-delimited JSON.
type FileLogger struct {
	file   *os.File
	mutex  sync.Mutex
	closed bool
}

// NewFileLogger opens (creating if necessary) an append-only audit log
// at path, with its parent directory created under 0700 and the file
// itself under 0600.
func NewFileLogger(path string) (*FileLogger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log file: %w", err)
	}
	return &FileLogger{file: file}, nil
}

// LogEvent appends event to the log, stamping Timestamp if it is zero.
func (l *FileLogger) LogEvent(event ParseEvent) error {
	if l.closed {
		return fmt.Errorf("audit logger is closed")
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal parse event: %w", err)
	}
	if _, err := l.file.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write parse event: %w", err)
	}
	return l.file.Sync()
}

// Close closes the underlying file. Subsequent LogEvent calls fail.
func (l *FileLogger) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

// DefaultPath returns the default audit log location under the user's
// home directory.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".shparse_audit.log"
	}
	return filepath.Join(homeDir, ".shparse_audit.log")
}
