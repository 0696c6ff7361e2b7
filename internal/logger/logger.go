// Package logger provides leveled logging for the receipta CLI.
// Debug and info output, including the clustering trace, only appears
// with --verbose. Warnings and errors are always written to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is a log severity.
type Level int

// Log levels in increasing severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelPrefix = map[Level]string{
	LevelDebug: "[DEBUG] ",
	LevelInfo:  "[INFO] ",
	LevelWarn:  "[WARN] ",
	LevelError: "[ERROR] ",
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables debug and info output.
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

// SetOutput sets the writer for all log output.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Enabled reports whether messages at level are currently written.
func Enabled(level Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled(level)
}

// enabled checks the level (caller must hold lock).
func enabled(level Level) bool {
	return level >= LevelWarn || verbose
}

func logf(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled(level) {
		return
	}
	fmt.Fprintf(output, levelPrefix[level]+format+"\n", args...)
}

// Debug logs a trace message in verbose mode.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info logs a progress message in verbose mode.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn logs a recoverable problem.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Error logs a failure the caller chose not to return.
func Error(format string, args ...any) {
	logf(LevelError, format, args...)
}

// Section prints a section header in verbose mode.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
