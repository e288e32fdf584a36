package logging

import (
	"io"
	"log/slog"
)

// NewStructuredLogger creates a JSON slog logger writing to w at the given level.
func NewStructuredLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// SafeCloseWithLogging closes c and logs a warning if closing fails.
// Useful in defer statements where the close error would otherwise be dropped.
func SafeCloseWithLogging(c io.Closer, logger *slog.Logger, resource string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logger.Warn("failed to close resource", "resource", resource, "error", err)
	}
}
