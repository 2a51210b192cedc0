// Package log is a small level-gated logger writing to stderr so it never
// mixes with command output on stdout.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level atomic.Int64

	mu  sync.Mutex
	out io.Writer = os.Stderr
)

func init() {
	level.Store(int64(LevelInfo))
}

func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// SetOutput redirects log lines. nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

func Debug(format string, args ...any) { logf(LevelDebug, "DEBUG", format, args...) }
func Info(format string, args ...any)  { logf(LevelInfo, "INFO", format, args...) }
func Warn(format string, args ...any)  { logf(LevelWarn, "WARN", format, args...) }

// Error is always emitted.
func Error(format string, args ...any) { logf(LevelError, "ERROR", format, args...) }

func logf(l slog.Level, tag, format string, args ...any) {
	if l < GetLevel() && l != LevelError {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "["+tag+"] "+format+"\n", args...)
}
