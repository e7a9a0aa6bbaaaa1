// Package logger provides verbose logging for wsbridge.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to show cache, throttle and provider activity.
// Warnings are printed regardless of the flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
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

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// printf holds the write lock so concurrent callers never interleave
// writes to the output.
func printf(onlyVerbose bool, prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if onlyVerbose && !verbose {
		return
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	printf(true, "[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	printf(true, "", "\n=== %s ===", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	printf(true, "[INFO] ", format, args...)
}

// Warn prints a warning. Warnings are always shown.
func Warn(format string, args ...any) {
	printf(false, "[WARN] ", format, args...)
}

// Redact masks a secret for display, keeping the last four characters.
func Redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", 8) + secret[len(secret)-4:]
}
