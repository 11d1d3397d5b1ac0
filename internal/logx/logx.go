// Package logx provides the leveled stderr logging used across both
// sides of the bridge. Debug output is gated on a process-wide toggle
// set once at startup from flags or config.
package logx

import (
	"log"
	"sync/atomic"
)

var debug atomic.Bool

// SetDebug enables or disables debug logging.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// DebugEnabled reports whether debug logging is on.
func DebugEnabled() bool {
	return debug.Load()
}

// Debugf logs only when debug mode is enabled.
func Debugf(format string, args ...any) {
	if debug.Load() {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Infof logs an informational message.
func Infof(format string, args ...any) {
	log.Printf("[INFO] "+format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...any) {
	log.Printf("[ERROR] "+format, args...)
}
