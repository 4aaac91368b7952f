package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"edd/internal/config"

	"github.com/google/uuid"
)

// newLogger builds the run logger. Logs go to stderr, or are appended to the
// configured log file, never to stdout where results are printed. Each record
// carries the run ID so runs can be told apart in a shared log file.
func newLogger(cfg *config.Config, verbose bool, stderr io.Writer) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.General.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	w := stderr
	closeFn := func() {}
	if cfg.General.LogFile != "" {
		f, err := os.OpenFile(cfg.General.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file %s: %w", cfg.General.LogFile, err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger.With("run", uuid.NewString()), closeFn, nil
}
