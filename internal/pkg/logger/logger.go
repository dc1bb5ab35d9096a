// Package logger wraps zerolog with the constructors and helpers used by the API.
//
// Request handlers obtain a request-scoped logger with FromContext; the request
// middleware attaches one (carrying the request id) to every incoming request.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger embeds zerolog.Logger so the full zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// Options controls where and how much the logger writes.
type Options struct {
	Level   string // debug, info, warn, error
	File    string // optional path; rotated by lumberjack
	Console bool   // human readable colored output instead of JSON
}

// New builds the process logger and installs it as the default context logger.
func New(opts Options) *Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stdout
	if opts.Console {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}
	}

	if opts.File != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     28,
			LocalTime:  true,
		})
	}

	l := zerolog.New(out).With().
		Str("service", "hotel-api").
		Timestamp().
		Logger()

	zerolog.DefaultContextLogger = &l
	defaultLogger = &Logger{l}

	return defaultLogger
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// FromContext returns the logger attached to ctx, falling back to the default logger.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// WithField returns a child logger carrying an extra string field.
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{l.Logger.With().Str(key, value).Logger()}
}

var defaultLogger = &Logger{zerolog.New(os.Stdout).With().Timestamp().Logger()}

// Warn logs a formatted message on the process logger, for code that runs
// outside a request.
func Warn(format string, v ...interface{}) { defaultLogger.Warn().Msgf(format, v...) }
