package logger

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[string]level{
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

const (
	FormatText  = "text"
	FormatPlain = "plain"
)

type runIDKey struct{}

type implLogger struct {
	logger *log.Logger
	level  level
}

// New creates a Logger writing to stdout in the given format
func New(lvl, format string) Logger {
	return NewFormatted(lvl, format, os.Stdout)
}

// NewWithWriter creates a Logger writing timestamped lines to w. Unknown levels fall back to info.
func NewWithWriter(lvl string, w io.Writer) Logger {
	return NewFormatted(lvl, FormatText, w)
}

// NewFormatted creates a Logger with an explicit line format.
// FormatPlain drops the timestamp; unknown formats behave as FormatText.
func NewFormatted(lvl, format string, w io.Writer) Logger {
	parsed, ok := levelNames[strings.ToLower(lvl)]
	if !ok {
		parsed = levelInfo
	}
	flags := log.LstdFlags
	if strings.ToLower(format) == FormatPlain {
		flags = 0
	}
	return &implLogger{
		logger: log.New(w, "", flags),
		level:  parsed,
	}
}

// WithRunID returns a context whose log lines are tagged with the given run ID
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunID extracts the run ID stored by WithRunID, or "" if none
func RunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

func (l *implLogger) shouldLog(lvl level) bool {
	return lvl >= l.level
}

func (l *implLogger) printf(ctx context.Context, lvl level, tag, msg string, args ...interface{}) {
	if !l.shouldLog(lvl) {
		return
	}
	prefix := "[" + tag + "] "
	if id := RunID(ctx); id != "" {
		prefix += "[run " + shortID(id) + "] "
	}
	l.logger.Printf(prefix+msg, args...)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.printf(ctx, levelDebug, "DEBUG", msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.printf(ctx, levelInfo, "INFO", msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.printf(ctx, levelWarn, "WARN", msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.printf(ctx, levelError, "ERROR", msg, args...)
}

// shortID keeps log lines readable; the first uuid group is unique enough within one host
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

type nopLogger struct{}

// Nop returns a Logger that discards everything
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(context.Context, string, ...interface{}) {}
func (nopLogger) Info(context.Context, string, ...interface{})  {}
func (nopLogger) Warn(context.Context, string, ...interface{})  {}
func (nopLogger) Error(context.Context, string, ...interface{}) {}
