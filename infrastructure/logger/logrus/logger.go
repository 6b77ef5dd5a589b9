// ABOUTME: Logrus-backed implementation of the application Logger interface
// ABOUTME: Supports JSON or text output and optional rotating log files via lumberjack

package logrus

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"blockpress-api/pkg/config"
)

// Logger implements the Logger interface on top of a logrus logger
type Logger struct {
	entry *logrus.Logger
}

// New creates a logger from configuration. When cfg.File is set, output
// goes to stdout and to a rotating file.
func New(cfg config.LogConfig) (*Logger, error) {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput is New with the console writer replaced, e.g. by stderr
// when stdout carries a protocol.
func NewWithOutput(cfg config.LogConfig, console io.Writer) (*Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	out := console
	if cfg.File != "" {
		out = io.MultiWriter(console, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	return NewWithWriter(out, level, cfg.Format), nil
}

// NewWithWriter creates a logger writing to out
func NewWithWriter(out io.Writer, level logrus.Level, format string) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	if format == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Logger{entry: l}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}

// Logrus exposes the underlying logger for libraries that accept one
func (l *Logger) Logrus() *logrus.Logger {
	return l.entry
}
