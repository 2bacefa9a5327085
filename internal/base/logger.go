// Package base
package base

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/flybg-dev/flyingsites/internal/interfaces/global"
)

var levelPainters = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgCyan),
	slog.LevelInfo:  color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed, color.Bold),
}

// consoleHandler renders colored console lines and mirrors them to the log file.
type consoleHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	file  io.Writer
	level slog.Level
	attrs []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	painter, ok := levelPainters[record.Level]
	if !ok {
		painter = color.New(color.FgWhite)
	}
	timestamp := record.Time.Format(time.DateTime)
	line := record.Message
	record.Attrs(func(attr slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", attr.Key, attr.Value)
		return true
	})
	for _, attr := range h.attrs {
		line += fmt.Sprintf(" %s=%v", attr.Key, attr.Value)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = fmt.Fprintf(h.out, "%s [%s] %s\n", timestamp, painter.Sprint(record.Level.String()), line)
	if h.file != nil {
		_, _ = fmt.Fprintf(h.file, "%s [%s] %s\n", timestamp, record.Level.String(), line)
	}
	return nil
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler { return h }

type Logger struct {
	logger  *slog.Logger
	logFile *os.File
}

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Init(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logFile, err := os.OpenFile(*global.LogFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, global.DefaultFilePermissions)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "fail to open log file %s: %v\n", *global.LogFilePath, err)
		logFile = nil
	}
	l.logFile = logFile

	handler := &consoleHandler{mu: &sync.Mutex{}, out: os.Stdout, level: level}
	if logFile != nil {
		handler.file = logFile
	}
	l.logger = slog.New(handler)
	slog.SetDefault(l.logger)
}

type loggerShutdownCallback struct {
	logFile *os.File
}

func (c *loggerShutdownCallback) Invoke(_ context.Context) error {
	if c.logFile == nil {
		return nil
	}
	return c.logFile.Close()
}

func (l *Logger) ShutdownCallback() global.Callable {
	return &loggerShutdownCallback{logFile: l.logFile}
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.logger.Debug(msg) }

func (l *Logger) DebugF(msg string, v ...interface{}) { l.logger.Debug(fmt.Sprintf(msg, v...)) }

func (l *Logger) Info(msg string, _ ...interface{}) { l.logger.Info(msg) }

func (l *Logger) InfoF(msg string, v ...interface{}) { l.logger.Info(fmt.Sprintf(msg, v...)) }

func (l *Logger) Warn(msg string, _ ...interface{}) { l.logger.Warn(msg) }

func (l *Logger) WarnF(msg string, v ...interface{}) { l.logger.Warn(fmt.Sprintf(msg, v...)) }

func (l *Logger) Error(msg string, _ ...interface{}) { l.logger.Error(msg) }

func (l *Logger) ErrorF(msg string, v ...interface{}) { l.logger.Error(fmt.Sprintf(msg, v...)) }

func (l *Logger) Fatal(msg string, _ ...interface{}) {
	l.logger.Error(msg)
	os.Exit(1)
}

func (l *Logger) FatalF(msg string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(msg, v...))
	os.Exit(1)
}
