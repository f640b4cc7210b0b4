package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level   string
	File    string
	NoColor bool
}

// New builds the process logger. With a file configured, records go to a rotated JSON file;
// otherwise they are printed in color to stderr.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
		}
	}

	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		handler := NewContextHandler(slog.NewJSONHandler(rotated, &slog.HandlerOptions{Level: level}))
		return slog.New(handler), rotated, nil
	}

	opts := *DefaultOptions
	opts.Level = level
	opts.NoColor = cfg.NoColor

	return slog.New(NewHandler(os.Stderr, &opts)), nopCloser{}, nil
}

// contextHandler copies the request id from the context into every record.
type contextHandler struct {
	slog.Handler
}

func NewContextHandler(h slog.Handler) slog.Handler {
	return &contextHandler{Handler: h}
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if requestID, ok := RequestIDFromContext(ctx); ok {
		r.AddAttrs(slog.String(string(requestIDKey), requestID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
