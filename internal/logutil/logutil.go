package logutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type ConfigReader interface {
	GetString(string) string
	GetBool(string) bool
}

type LoggerConfig struct {
	Level     string
	Format    string
	AddSource bool
}

func LoggerConfigFromReader(r ConfigReader) LoggerConfig {
	if r == nil {
		return LoggerConfig{}
	}
	return LoggerConfig{
		Level:     r.GetString("logging.level"),
		Format:    r.GetString("logging.format"),
		AddSource: r.GetBool("logging.add_source"),
	}
}

func LoggerFromConfig(cfg LoggerConfig) (*slog.Logger, error) {
	return NewLogger(os.Stderr, cfg)
}

// LoggerFromReader builds the process logger from the logging.* keys.
func LoggerFromReader(r ConfigReader) (*slog.Logger, error) {
	return LoggerFromConfig(LoggerConfigFromReader(r))
}

func NewLogger(w io.Writer, cfg LoggerConfig) (*slog.Logger, error) {
	level, err := parseSlogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown logging.format: %s", cfg.Format)
	}

	return slog.New(h), nil
}

// Discard is the logger components fall back to when none is injected.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseSlogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown logging.level: %s", s)
	}
}
