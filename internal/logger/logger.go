// Package logger provides verbose logging for the casegen CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to trace the ingest, retrieval and generation
// pipeline. Errors are always printed.
//
// A log file may be attached with SetFile; it receives every message
// regardless of verbosity and is rotated by size.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	file    io.WriteCloser
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetFile mirrors all log output to a rotating file at path.
// An empty path detaches the current file.
func SetFile(path string) error {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		if err := file.Close(); err != nil {
			return fmt.Errorf("closing log file: %w", err)
		}
		file = nil
	}
	if path == "" {
		return nil
	}
	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	return nil
}

// Close detaches and closes the log file, if any.
func Close() error {
	return SetFile("")
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit(false, "[DEBUG] "+format+"\n", args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	emit(false, "\n=== %s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit(false, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit(false, "[WARN] "+format+"\n", args...)
}

// Error prints an error message whether or not verbose mode is enabled.
func Error(format string, args ...any) {
	emit(true, "[ERROR] "+format+"\n", args...)
}

// emit holds the write lock so concurrent callers do not interleave lines.
func emit(always bool, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose || always {
		fmt.Fprintf(output, format, args...)
	}
	if file != nil {
		fmt.Fprintf(file, format, args...)
	}
}
