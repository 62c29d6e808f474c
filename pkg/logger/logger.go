// Package logger provides a logging utility based on log/slog
//
// DEBUG logging can be enabled by setting the MCP_DEBUG environment variable:
//
//	export MCP_DEBUG=1
//
// Logs go to stderr, since stdout carries the MCP stdio transport. Setting
// MCP_LOG_FILE additionally appends JSON records to that file.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	// Logger is the global logger instance
	Logger *slog.Logger

	mu      sync.Mutex
	logFile *os.File
)

// Config controls where and how verbosely the global logger writes
type Config struct {
	Debug   bool
	Stderr  io.Writer
	LogFile string
}

// ConfigFromEnv reads MCP_DEBUG and MCP_LOG_FILE
func ConfigFromEnv() Config {
	return Config{
		Debug:   debugEnabled(os.Getenv("MCP_DEBUG")),
		Stderr:  os.Stderr,
		LogFile: os.Getenv("MCP_LOG_FILE"),
	}
}

func debugEnabled(v string) bool {
	return v != "" && strings.ToLower(v) != "false" && v != "0"
}

func init() {
	cfg := ConfigFromEnv()
	cfg.LogFile = ""
	if _, err := Setup(cfg); err != nil {
		// Stderr-only setup cannot fail.
		panic(err)
	}
}

// Setup replaces the global logger. The returned cleanup closes the log
// file, if one was opened, and falls back to stderr-only logging.
func Setup(cfg Config) (func() error, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	var handler slog.Handler = slog.NewTextHandler(stderr, opts)

	var f *os.File
	if cfg.LogFile != "" {
		var err error
		f, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		handler = fanout{handler, slog.NewJSONHandler(f, opts)}
	}

	mu.Lock()
	prev := logFile
	logFile = f
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
	mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()
		if logFile != f || f == nil {
			return nil
		}
		err := f.Close()
		logFile = nil
		Logger = slog.New(slog.NewTextHandler(stderr, opts))
		slog.SetDefault(Logger)
		return err
	}

	return cleanup, nil
}

// fanout sends each record to every handler that accepts its level
type fanout []slog.Handler

func (h fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, hh := range h {
		if hh.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (h fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, hh := range h {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (h fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(h))
	for i, hh := range h {
		out[i] = hh.WithAttrs(attrs)
	}
	return out
}

func (h fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(h))
	for i, hh := range h {
		out[i] = hh.WithGroup(name)
	}
	return out
}

// Debug logs a debug message if debug logging is enabled
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return Logger
}
