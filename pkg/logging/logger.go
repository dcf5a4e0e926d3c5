// Package logging wraps log/slog with application conventions: JSON or text
// handlers, component-scoped child loggers, and optional file output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `json:"level"`       // "debug", "info", "warn", "error"
	Format     string `json:"format"`      // "json" or "text"
	Output     string `json:"output"`      // "stdout", "stderr", or file path
	EnableFile bool   `json:"enable_file"` // mirror output to a file
	FilePath   string `json:"file_path"`
}

// DefaultLogConfig returns sensible default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}
}

// Logger provides structured logging with component context.
type Logger struct {
	slogger *slog.Logger
	file    *os.File
}

// NewLogger creates a structured logger from config.
func NewLogger(config LogConfig) (*Logger, error) {
	logger := &Logger{}

	var writer io.Writer
	switch config.Output {
	case "", "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		f, err := openLogFile(config.Output)
		if err != nil {
			return nil, err
		}
		logger.file = f
		writer = f
	}

	if config.EnableFile && config.FilePath != "" && logger.file == nil {
		f, err := openLogFile(config.FilePath)
		if err != nil {
			return nil, err
		}
		logger.file = f
		writer = io.MultiWriter(writer, f)
	}

	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}
	var handler slog.Handler
	if config.Format == "text" {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}
	logger.slogger = slog.New(handler)

	return logger, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(name string) *slog.Logger {
	return l.slogger.With("component", name)
}

func (l *Logger) Debug(msg string, args ...any) { l.slogger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slogger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slogger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slogger.Error(msg, args...) }

// Close releases the log file if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
