package glyphmesh

import (
	"log/slog"

	"github.com/gogpu/glyphmesh/internal/logger"
)

// SetLogger configures the logger for glyphmesh and all its sub-packages.
// By default glyphmesh produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: per-pass diagnostics (token and line counts, cache hits)
//   - [slog.LevelInfo]: font loads and fallback font selection
//   - [slog.LevelWarn]: recoverable degradation (unsupported outline command,
//     exhausted fallback chain, failed font load, triangulation failure)
//
// Example:
//
//	glyphmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the logger currently used by glyphmesh.
func Logger() *slog.Logger {
	return logger.Get()
}
