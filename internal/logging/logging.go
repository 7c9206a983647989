package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Setup points the default slog logger at a text handler writing to path.
// The terminal belongs to the UI, so nothing is ever logged to stdout.
// An empty path discards all output.
func Setup(path string, level slog.Level, component string) (io.Closer, error) {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	slog.SetDefault(New(f, level, component))

	return f, nil
}

// New builds a component-scoped text logger writing to w.
func New(w io.Writer, level slog.Level, component string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(handler).With("component", component)
}
