package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog behind a small structured-field API so call sites
// never import zerolog directly.
type Logger struct {
	zl zerolog.Logger
}

type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json or console
	Output     string // stdout, stderr, or file path
	TimeFormat string // defaults to RFC3339Nano
}

func New(cfg *Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer
	switch cfg.Output {
	case "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		output = file
	}

	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339Nano
	}
	zerolog.TimeFieldFormat = cfg.TimeFormat

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: cfg.TimeFormat,
		}
	}

	zl := zerolog.New(output).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return &Logger{zl: zl}, nil
}

// Field appends one typed key/value to a log event.
type Field func(e *zerolog.Event)

func (l *Logger) Debug(msg string, fields ...Field) {
	event := l.zl.Debug()
	for _, f := range fields {
		f(event)
	}
	event.Msg(msg)
}

func (l *Logger) Info(msg string, fields ...Field) {
	event := l.zl.Info()
	for _, f := range fields {
		f(event)
	}
	event.Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	event := l.zl.Warn()
	for _, f := range fields {
		f(event)
	}
	event.Msg(msg)
}

func (l *Logger) Error(msg string, fields ...Field) {
	event := l.zl.Error()
	for _, f := range fields {
		f(event)
	}
	event.Msg(msg)
}

func String(key, value string) Field {
	return func(e *zerolog.Event) { e.Str(key, value) }
}

func Strings(key string, values []string) Field {
	return String(key, strings.Join(values, ", "))
}

func Int(key string, value int) Field {
	return func(e *zerolog.Event) { e.Int(key, value) }
}

func Int64(key string, value int64) Field {
	return func(e *zerolog.Event) { e.Int64(key, value) }
}

func Float64(key string, value float64) Field {
	return func(e *zerolog.Event) { e.Float64(key, value) }
}

func Bool(key string, value bool) Field {
	return func(e *zerolog.Event) { e.Bool(key, value) }
}

// Duration logs the value in whole milliseconds.
func Duration(key string, value time.Duration) Field {
	return Int(key, int(value/time.Millisecond))
}

func Error(err error) Field {
	return func(e *zerolog.Event) { e.Err(err) }
}

func Any(key string, value interface{}) Field {
	return func(e *zerolog.Event) { e.Interface(key, value) }
}
