package main

import (
	"context"
	"io"
	"log/slog"

	nbmd "github.com/alnah/go-nbmd"
)

// newLogger returns a text logger on w. Verbose lowers the level to Debug,
// quiet raises it to Error; the default is Warn. Timestamps are dropped
// since every record belongs to the current run.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// logDiagnostics emits one record per diagnostic. Fence problems can
// change the cell structure and are logged at Warn; the rest is routine
// cleanup and logged at Debug.
func logDiagnostics(ctx context.Context, logger *slog.Logger, path string, diags []nbmd.Diagnostic) {
	for _, d := range diags {
		level := slog.LevelDebug
		if d.Kind == nbmd.DiagUnterminatedFence || d.Kind == nbmd.DiagFenceAudit {
			level = slog.LevelWarn
		}
		logger.LogAttrs(ctx, level, d.Message,
			slog.String("file", path),
			slog.String("kind", string(d.Kind)),
			slog.Int("line", d.Line),
		)
	}
}
