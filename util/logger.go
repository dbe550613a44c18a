// Package util provides low-level helpers shared by all other packages.
package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// LogLevel controls output verbosity.
type LogLevel int

const (
	LogQuiet   LogLevel = 0
	LogNormal  LogLevel = 1
	LogVerbose LogLevel = 2
	LogDebug   LogLevel = 3
)

// ANSI colour codes per level tag. Applied only when the output is a
// terminal.
var levelColors = map[string]string{
	"INF": "\033[36m", // cyan
	"WRN": "\033[33m", // yellow
	"ERR": "\033[31m", // red
	"VRB": "\033[90m", // bright black
	"DBG": "\033[90m",
}

const colorReset = "\033[0m"

// Logger writes levelled messages to stderr with optional timestamps,
// level prefixes, and ANSI colour when attached to a terminal.
type Logger struct {
	level      LogLevel
	output     io.Writer
	mu         sync.Mutex
	timestamps bool // if true, prepend clock timestamps
	color      bool // if true, colourise the level tag
}

// NewLogger returns a Logger that prints messages at or below the given
// verbosity (0 = quiet, 1 = normal, 2 = verbose, 3 = debug).
func NewLogger(verbosity int) *Logger {
	return &Logger{
		level:      LogLevel(verbosity),
		output:     os.Stderr,
		timestamps: verbosity >= 3, // auto-enable timestamps in debug mode
		color:      term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// SetTimestamps enables or disables timestamp prefixes.
func (l *Logger) SetTimestamps(on bool) { l.timestamps = on }

// SetColor enables or disables ANSI colour output.
func (l *Logger) SetColor(on bool) { l.color = on }

// SetOutput overrides the output writer (default: os.Stderr).
// Colour is disabled since the writer is no longer known to be a tty.
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
	l.color = false
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel { return l.level }

// Info prints when verbosity ≥ 1.  Prefixed with [INF].
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogNormal {
		l.write("INF", format, args...)
	}
}

// Warn prints when verbosity ≥ 1.  Prefixed with [WRN].
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogNormal {
		l.write("WRN", format, args...)
	}
}

// Verbose prints when verbosity ≥ 2.  Prefixed with [VRB].
func (l *Logger) Verbose(format string, args ...interface{}) {
	if l.level >= LogVerbose {
		l.write("VRB", format, args...)
	}
}

// Debug prints when verbosity ≥ 3.  Prefixed with [DBG].
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogDebug {
		l.write("DBG", format, args...)
	}
}

// Error always prints regardless of verbosity.  Prefixed with [ERR].
func (l *Logger) Error(format string, args ...interface{}) {
	l.write("ERR", format, args...)
}

func (l *Logger) write(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tag := "[" + level + "]"
	if l.color {
		if c, ok := levelColors[level]; ok {
			tag = c + tag + colorReset
		}
	}

	msg := fmt.Sprintf(format, args...)
	if l.timestamps {
		ts := time.Now().Format("15:04:05.000")
		fmt.Fprintf(l.output, "%s %s %s\n", ts, tag, msg)
	} else {
		fmt.Fprintf(l.output, "%s %s\n", tag, msg)
	}
}
