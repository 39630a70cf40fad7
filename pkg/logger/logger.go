package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// Options 日志初始化选项
type Options struct {
	Level     string // debug, info, warn, error
	Output    string // console, file, both
	Format    string // text, json
	FilePath  string
	Colorize  bool
	AddSource bool
}

var (
	defaultLogger *slog.Logger
	levelVar      = new(slog.LevelVar)
	consoleLogger *charmlog.Logger
	logFile       *os.File
	mu            sync.Mutex
)

// Init 初始化全局日志
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}
	levelVar.Set(level)

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	consoleLogger = nil

	var handlers []slog.Handler

	output := strings.ToLower(opts.Output)
	if output == "" {
		output = "console"
	}

	if output == "console" || output == "both" {
		handlers = append(handlers, newConsoleHandler(os.Stdout, opts))
	}

	if output == "file" || output == "both" {
		if opts.FilePath == "" {
			return fmt.Errorf("log file path is required for output %q", output)
		}
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		handlers = append(handlers, newStructuredHandler(f, opts))
	}

	if len(handlers) == 0 {
		return fmt.Errorf("unknown log output: %s", opts.Output)
	}

	if len(handlers) == 1 {
		defaultLogger = slog.New(handlers[0])
	} else {
		defaultLogger = slog.New(&fanoutHandler{handlers: handlers})
	}
	slog.SetDefault(defaultLogger)
	return nil
}

// newConsoleHandler 控制台输出：彩色时使用charmbracelet/log，否则使用slog
func newConsoleHandler(w io.Writer, opts Options) slog.Handler {
	if opts.Colorize {
		consoleLogger = charmlog.NewWithOptions(w, charmlog.Options{
			ReportTimestamp: true,
			ReportCaller:    opts.AddSource,
			Level:           toCharmLevel(levelVar.Level()),
		})
		return consoleLogger
	}
	return newStructuredHandler(w, opts)
}

func newStructuredHandler(w io.Writer, opts Options) slog.Handler {
	handlerOpts := &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: opts.AddSource,
	}
	if strings.ToLower(opts.Format) == "json" {
		return slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.NewTextHandler(w, handlerOpts)
}

// SetLevel 动态调整日志级别
func SetLevel(level string) error {
	l, err := parseLevel(level)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	levelVar.Set(l)
	if consoleLogger != nil {
		consoleLogger.SetLevel(toCharmLevel(l))
	}
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

func toCharmLevel(l slog.Level) charmlog.Level {
	switch {
	case l <= slog.LevelDebug:
		return charmlog.DebugLevel
	case l <= slog.LevelInfo:
		return charmlog.InfoLevel
	case l <= slog.LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}

func get() *slog.Logger {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l != nil {
		return l
	}

	if err := Init(Options{Level: "info", Output: "console"}); err != nil {
		return slog.Default()
	}
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

// Get 返回底层slog.Logger
func Get() *slog.Logger {
	return get()
}

func Debug(msg string, args ...any) {
	get().Debug(msg, SanitizeArgs(args...)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, SanitizeArgs(args...)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, SanitizeArgs(args...)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, SanitizeArgs(args...)...)
}

// fanoutHandler 同时写入多个handler（output=both）
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: next}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &fanoutHandler{handlers: next}
}
