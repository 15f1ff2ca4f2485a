package logger

import (
	"log"
	"os"
	"path/filepath"
)

// FileLogger appends leveled messages to a log file. The daemon uses it
// so reminders and errors survive after the terminal is gone.
type FileLogger struct {
	std  *StandardLogger
	file *os.File
}

// NewFileLogger opens (or creates) the log file at path, creating parent
// directories as needed.
func NewFileLogger(path string) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{
		std:  NewStandardLogger(log.New(f, "", log.LstdFlags)),
		file: f,
	}, nil
}

func (f *FileLogger) Info(format string, args ...interface{}) {
	f.std.Info(format, args...)
}

func (f *FileLogger) Warning(format string, args ...interface{}) {
	f.std.Warning(format, args...)
}

func (f *FileLogger) Error(format string, args ...interface{}) {
	f.std.Error(format, args...)
}

// Close flushes and closes the underlying file. Safe to call twice.
func (f *FileLogger) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

var _ Logger = (*FileLogger)(nil)
