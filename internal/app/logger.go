package app

import (
	"log/slog"
	"os"

	"gofo-dispatch/internal/logx"
)

// NewLogger returns the process-wide JSON logger.
func NewLogger() logx.Logger {
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logx.NewSlogAdapter(base)
}
