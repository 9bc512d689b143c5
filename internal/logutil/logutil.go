// Package logutil configures structured logging for the command-line tools.
package logutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// DebugEnv enables debug logging when set to a true value (BORN_DEBUG=1).
const DebugEnv = "BORN_DEBUG"

// NewLogger returns a text logger writing to w at the given level.
// Source locations are trimmed to the file name.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.SourceKey {
				if source, ok := attr.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			return attr
		},
	}))
}

// Level returns slog.LevelDebug when verbose is set or BORN_DEBUG holds a
// true value, slog.LevelInfo otherwise.
func Level(verbose bool) slog.Level {
	if verbose || Debug() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Debug reports whether BORN_DEBUG is set. Any non-boolean, non-empty
// value counts as true.
func Debug() bool {
	s := os.Getenv(DebugEnv)
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return true
	}
	return b
}
