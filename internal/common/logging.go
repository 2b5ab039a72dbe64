package common

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger for application logging
type Logger struct {
	zerolog.Logger
}

// NewLogger creates a logger from logging configuration
func NewLogger(config *LoggingConfig) *Logger {
	return NewLoggerWithOutput(config, os.Stdout)
}

// NewLoggerWithOutput creates a logger writing to the given output
func NewLoggerWithOutput(config *LoggingConfig, output io.Writer) *Logger {
	level := parseLevel(config.Level)

	var writer io.Writer = output
	if strings.EqualFold(config.Format, "console") {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{logger}
}

// NewSilentLogger creates a logger that discards all output, for tests
func NewSilentLogger() *Logger {
	return &Logger{zerolog.New(io.Discard).Level(zerolog.Disabled)}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
