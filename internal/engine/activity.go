package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// LogLevel classifies an activity log entry.
type LogLevel string

const (
	LevelInfo    LogLevel = "info"
	LevelSuccess LogLevel = "success"
	LevelWarn    LogLevel = "warn"
	LevelError   LogLevel = "error"
)

// LogEntry is one line of the activity feed.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Level   LogLevel  `json:"level"`
	Message string    `json:"message"`
}

// ActivityLog is an append-only feed of operation milestones and failures.
// Every entry is also written to slog. Safe for concurrent readers.
type ActivityLog struct {
	mu      sync.Mutex
	entries []LogEntry
	logger  *slog.Logger
	now     func() time.Time
}

// NewActivityLog returns an empty feed that mirrors entries to logger (slog.Default when nil).
func NewActivityLog(logger *slog.Logger) *ActivityLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityLog{logger: logger, now: time.Now}
}

func (l *ActivityLog) add(level LogLevel, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	l.entries = append(l.entries, LogEntry{Time: l.now(), Level: level, Message: msg})
	l.mu.Unlock()

	switch level {
	case LevelWarn:
		l.logger.Warn(msg)
	case LevelError:
		l.logger.Error(msg)
	default:
		l.logger.Info(msg, slog.String("kind", string(level)))
	}
}

func (l *ActivityLog) Info(format string, args ...any)    { l.add(LevelInfo, format, args...) }
func (l *ActivityLog) Success(format string, args ...any) { l.add(LevelSuccess, format, args...) }
func (l *ActivityLog) Warn(format string, args ...any)    { l.add(LevelWarn, format, args...) }
func (l *ActivityLog) Error(format string, args ...any)   { l.add(LevelError, format, args...) }

// Entries returns a copy of the feed.
func (l *ActivityLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Count returns how many entries of level have been logged.
func (l *ActivityLog) Count(level LogLevel) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
