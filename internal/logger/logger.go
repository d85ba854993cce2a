// Package logger provides the leveled diagnostic logger for duscan.
//
// All diagnostics go to the writer the logger was built with (stderr in
// practice) so they never interleave with primary output on stdout. Messages
// are prefixed with [HH:MM:SS] timestamps and filtered by level; color is
// applied only when the writer is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log levels, lowest to highest.
const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

// Logger writes timestamped, level-filtered diagnostics. It is safe for
// concurrent use.
type Logger struct {
	mu     sync.Mutex
	writer io.Writer
	level  int
	color  bool
}

// New creates a Logger writing to w at the given level. Valid levels are
// trace, debug, info, warn, and error (case-insensitive); anything else
// falls back to info. A nil writer discards all output.
func New(w io.Writer, level string) *Logger {
	return &Logger{
		writer: w,
		level:  parseLevel(level),
		color:  isTerminal(w),
	}
}

// isTerminal reports whether w is a TTY that should receive color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *Logger) log(level int, label string, paint *color.Color, format string, args ...interface{}) {
	if l == nil || l.writer == nil || level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	stamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	if l.color && paint != nil {
		label = paint.Sprint(label)
	}
	fmt.Fprintf(l.writer, "[%s] %s %s\n", stamp, label, msg)
}

// Tracef logs at trace level.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.log(levelTrace, "TRACE", color.New(color.Faint), format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(levelDebug, "DEBUG", color.New(color.FgCyan), format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(levelInfo, "INFO ", nil, format, args...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(levelWarn, "WARN ", color.New(color.FgYellow), format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(levelError, "ERROR", color.New(color.FgRed), format, args...)
}
