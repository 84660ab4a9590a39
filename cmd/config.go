package cmd

import (
	"io"
	"log/slog"

	"github.com/masmgr/changelog-gen/config"
	apperrors "github.com/masmgr/changelog-gen/internal/errors"
)

// loadConfig loads the configuration file and applies command-line overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, apperrors.NewInvalidArgumentErrorWithCause("--config", err.Error(), err)
	}

	if len(opts.IncludePaths) > 0 {
		cfg.Filters.Include = opts.IncludePaths
	}
	if len(opts.ExcludePaths) > 0 {
		cfg.Filters.Exclude = opts.ExcludePaths
	}
	if opts.Model != "" {
		cfg.Renderer.Model = opts.Model
	}
	if opts.Chronological {
		cfg.Selection.Chronological = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewInvalidArgumentErrorWithCause("--config", err.Error(), err)
	}
	return cfg, nil
}

// newLogger returns a debug text logger on w, or a logger that discards
// everything when verbose is off.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
