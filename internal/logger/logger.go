// Package logger provides levelled diagnostic output.
//
// Debug output is suppressed unless verbose mode is enabled. All other
// levels are always written. Output goes to stderr so that CLI commands
// can print JSON to stdout.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	std     = log.New(os.Stderr, "", log.LstdFlags)
)

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether debug output is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects all log output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
}

// Debug logs a message only in verbose mode.
func Debug(format string, args ...any) {
	if !IsVerbose() {
		return
	}
	output("DEBUG", format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	output("INFO", format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	output("WARN", format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	output("ERROR", format, args...)
}

func output(level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	_ = std.Output(3, level+" "+fmt.Sprintf(format, args...))
}
