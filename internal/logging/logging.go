// Package logging provides the application's structured leveled logger.
// The Logger formats nothing itself; it hands every record to a Sink.
// Output destinations are added by implementing Sink, never by editing
// the Logger.
package logging

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Level is the severity of a log entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a level name to a Level. It is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Entry is a single log record as handed to a Sink.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  map[string]any
}

// Logger filters by level and forwards entries to its sink.
// Logging never returns or panics on sink failure; failed writes are
// counted and dropped.
type Logger struct {
	level   Level
	sink    Sink
	base    map[string]any
	dropped *atomic.Uint64
	now     func() time.Time
}

// New creates a Logger writing to sink at the given minimum level.
func New(level Level, sink Sink) *Logger {
	return &Logger{
		level:   level,
		sink:    sink,
		dropped: &atomic.Uint64{},
		now:     time.Now,
	}
}

// With returns a Logger that attaches the given fields to every entry.
// The receiver is unchanged; derived loggers share the sink and the
// dropped counter.
func (l *Logger) With(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.base)+len(fields))
	for k, v := range l.base {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{
		level:   l.level,
		sink:    l.sink,
		base:    merged,
		dropped: l.dropped,
		now:     l.now,
	}
}

// Dropped returns the count of entries lost to sink errors.
func (l *Logger) Dropped() uint64 { return l.dropped.Load() }

// Close flushes and closes the underlying sink.
func (l *Logger) Close() error { return l.sink.Close() }

func (l *Logger) Debug(msg string, fields map[string]any) { l.log(LevelDebug, msg, fields) }

func (l *Logger) Info(msg string, fields map[string]any) { l.log(LevelInfo, msg, fields) }

func (l *Logger) Warn(msg string, fields map[string]any) { l.log(LevelWarn, msg, fields) }

func (l *Logger) Error(msg string, fields map[string]any) { l.log(LevelError, msg, fields) }

func (l *Logger) log(level Level, msg string, fields map[string]any) {
	if level < l.level {
		return
	}

	merged := make(map[string]any, len(l.base)+len(fields))
	for k, v := range l.base {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	err := l.sink.Write(Entry{
		Time:    l.now().UTC(),
		Level:   level,
		Message: msg,
		Fields:  merged,
	})
	if err != nil {
		l.dropped.Add(1)
	}
}
