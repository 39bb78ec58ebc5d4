// Package logging provides the engine and client loggers.
//
// Two loggers are kept, mirroring the split between engine internals and the
// application built on top of it: Core for engine subsystems and Client for
// game code. Both share one level so a single switch silences everything.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// LevelTrace sits below slog.LevelDebug and is used for per-event chatter.
const LevelTrace = slog.Level(-8)

var (
	level  = new(slog.LevelVar)
	core   atomic.Pointer[slog.Logger]
	client atomic.Pointer[slog.Logger]
)

func init() {
	level.Set(slog.LevelInfo)
	SetOutput(os.Stderr)
}

// SetOutput rebuilds both loggers to write to w.
func SetOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	})
	core.Store(slog.New(h).With("source", "MASHENKA"))
	client.Store(slog.New(h).With("source", "APP"))
}

// Core returns the engine logger.
func Core() *slog.Logger { return core.Load() }

// Client returns the application logger.
func Client() *slog.Logger { return client.Load() }

// SetLevel changes the minimum level of both loggers.
func SetLevel(l slog.Level) { level.Set(l) }

// Level reports the current minimum level.
func Level() slog.Level { return level.Level() }

// Trace logs msg at LevelTrace on l.
func Trace(l *slog.Logger, msg string, args ...any) {
	l.Log(context.Background(), LevelTrace, msg, args...)
}

// ParseLevel maps a config string to a level. The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lv, ok := a.Value.Any().(slog.Level); ok && lv <= LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}
