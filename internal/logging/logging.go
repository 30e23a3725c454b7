// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ganot/issue-tracker/internal/config"
	"github.com/mattn/go-isatty"
)

// New returns a logger for cfg and a function releasing any log file it opened.
// In stdio mode logs go to stderr so stdout stays clean for the protocol stream.
func New(cfg config.Config) (*slog.Logger, func() error, error) {
	out := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.ModeStdio {
		out = os.Stderr
	}
	closer := func() error { return nil }

	if cfg.Log.Path != "" {
		fileWriter, err := NewFileWriter(cfg.Log.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = fileWriter
		closer = fileWriter.Close
	}

	return newLogger(out, cfg.Log.Level, cfg.Log.Format), closer, nil
}

func newLogger(out io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if useJSON(out, format) {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

func useJSON(out io.Writer, format string) bool {
	switch format {
	case config.FormatJSON:
		return true
	case config.FormatText:
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// ParseLevel maps a config level name to a slog level; unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
