package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DebugStream is a thin leveled wrapper over logrus, replacing the
// original's compile-time __DEBUG__ macro family with a boolean gate per
// named level: when a level is disabled, Enter/Printf cost one map lookup
// (plus the push and pop of the level stack that Enter/Exit always do) and
// log nothing, the Go-idiomatic equivalent of "compiles to a no-op in
// non-debug builds".
type DebugStream struct {
	log     *logrus.Logger
	enabled map[string]bool
	stack   []string
}

// NewDebugStream creates a DebugStream writing through the given logger.
// A nil logger falls back to logrus.StandardLogger().
func NewDebugStream(log *logrus.Logger) *DebugStream {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DebugStream{log: log, enabled: make(map[string]bool)}
}

// Enable turns on debug output for the given level name.
func (d *DebugStream) Enable(level string) { d.enabled[level] = true }

// Disable turns off debug output for the given level name.
func (d *DebugStream) Disable(level string) { delete(d.enabled, level) }

// IsEnabled reports whether level is currently enabled.
func (d *DebugStream) IsEnabled(level string) bool { return d.enabled[level] }

// Enter logs the per-handler-entry line the original emits on every
// handler invocation: "t = [<globalTime>] --> <header>".
func (d *DebugStream) Enter(level string, globalTime Tick, header string) {
	d.stack = append(d.stack, level)
	if !d.enabled[level] {
		return
	}
	d.log.WithField("level", level).Debugf("t = [%s] --> %s", globalTime, header)
}

// Exit pops the most recently entered level.
func (d *DebugStream) Exit() {
	if len(d.stack) == 0 {
		return
	}
	d.stack = d.stack[:len(d.stack)-1]
}

// Printf writes a formatted line at the given level, if enabled.
func (d *DebugStream) Printf(level string, format string, args ...interface{}) {
	if !d.enabled[level] {
		return
	}
	d.log.WithField("level", level).Debug(fmt.Sprintf(format, args...))
}
