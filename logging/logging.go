// Package logging configures the process-wide slog logger. The TUI owns
// the terminal while running, so log output goes to a file (or nowhere),
// never to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Setup installs the default logger. path selects the log file; an
// empty path discards all output. verbosity maps the -v flag count:
// 0 = warn, 1 = info, 2+ = debug.
func Setup(path string, verbosity int) error {
	var w io.Writer = io.Discard
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", path, err)
		}
		w = f
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(verbosity),
	})))
	return nil
}

// Level converts a -v count into a slog level.
func Level(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
