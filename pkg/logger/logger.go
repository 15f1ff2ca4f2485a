// Package logger provides the logging backends used by the taskbell
// daemon and CLI: console, file and fan-out variants behind one
// interface.
package logger

import (
	"fmt"
	"log"
)

// Logger is the logging interface shared by all taskbell components.
type Logger interface {
	// Info logs an informational message (e.g. "daemon started").
	Info(format string, args ...interface{})

	// Warning logs a recoverable problem (e.g. "state blob unreadable").
	Warning(format string, args ...interface{})

	// Error logs a failure (e.g. "failed to bind socket").
	Error(format string, args ...interface{})

	// Close releases any resources held by the backend. Safe to call
	// more than once.
	Close() error
}

// StandardLogger writes leveled messages through a stdlib *log.Logger.
// This is the default backend when running in the foreground.
type StandardLogger struct {
	logger *log.Logger
}

// NewStandardLogger wraps the given *log.Logger. Passing nil uses
// log.Default().
func NewStandardLogger(l *log.Logger) *StandardLogger {
	if l == nil {
		l = log.Default()
	}
	return &StandardLogger{logger: l}
}

func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.logger.Printf("[INFO] "+format, args...)
}

func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.logger.Printf("[WARNING] "+format, args...)
}

func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+format, args...)
}

func (s *StandardLogger) Close() error {
	return nil
}

// Std exposes the wrapped *log.Logger for components that take one
// directly.
func (s *StandardLogger) Std() *log.Logger {
	return s.logger
}

// NopLogger discards every message. Used in tests and when logging is
// disabled.
type NopLogger struct{}

func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Info(format string, args ...interface{})    {}
func (n *NopLogger) Warning(format string, args ...interface{}) {}
func (n *NopLogger) Error(format string, args ...interface{})   {}

func (n *NopLogger) Close() error {
	return nil
}

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
)

// MockLogger records every call for assertion in tests.
type MockLogger struct {
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
	CloseCalled  bool
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		InfoCalls:    make([]string, 0),
		WarningCalls: make([]string, 0),
		ErrorCalls:   make([]string, 0),
	}
}

func (m *MockLogger) Info(format string, args ...interface{}) {
	m.InfoCalls = append(m.InfoCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.WarningCalls = append(m.WarningCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Error(format string, args ...interface{}) {
	m.ErrorCalls = append(m.ErrorCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Close() error {
	m.CloseCalled = true
	return nil
}

var _ Logger = (*MockLogger)(nil)
