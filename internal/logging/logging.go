// Package logging provides structured logging helpers built on zerolog.
//
// Loggers travel on the context: command setup attaches a configured logger
// with ContextWithLogger, and every component retrieves it with FromContext.
// A trace ID is generated once per invocation and stamped on every event so
// a single validation or calculation run can be followed across components.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level to emit ("trace", "debug", "info", "warn", "error").
	// Unparseable values fall back to "info".
	Level string

	// Format selects the output encoding: "console" for human-readable
	// output, anything else for JSON.
	Format string

	// File is an optional path to append logs to. Empty means stderr only.
	File string
}

// Result describes the logger produced by New along with where it writes.
type Result struct {
	Logger   zerolog.Logger
	FilePath string
	// UsingFile is true when log output goes to FilePath rather than stderr.
	UsingFile bool

	file *os.File
}

// Close releases the log file handle, if one was opened.
func (r *Result) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a logger from cfg. When cfg.File cannot be opened the logger
// falls back to stderr rather than failing the command.
func New(cfg Config) Result {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	result := Result{}

	if cfg.File != "" {
		f, openErr := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if openErr == nil {
			out = f
			result.file = f
			result.FilePath = cfg.File
			result.UsingFile = true
		}
	}

	if cfg.Format == "console" && !result.UsingFile {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	result.Logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return result
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger attached to ctx, or a disabled logger when
// none is attached. Components never need to nil-check.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// ContextWithLogger attaches logger to ctx for retrieval via FromContext.
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

type traceIDKey struct{}

// traceIDBytes is the number of random bytes in a generated trace ID.
const traceIDBytes = 8

// ContextWithTraceID attaches a trace ID to ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID on ctx, or "" when none is set.
func TraceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GetOrGenerateTraceID returns the trace ID on ctx, generating a fresh
// random one when the context carries none.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	buf := make([]byte, traceIDBytes)
	if _, err := rand.Read(buf); err != nil {
		// Timestamp fallback keeps IDs unique enough for log correlation.
		return hex.EncodeToString([]byte(time.Now().Format("150405.000000")))
	}
	return hex.EncodeToString(buf)
}
