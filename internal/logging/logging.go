// Package logging builds the zap logger used by the skyclock CLI and server.
// The calculation packages never log.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/thurmanmarka/skyclock/internal/config"
)

// New returns a logger for env. local gets a colored console encoder at
// debug level; development and production get JSON. level overrides the
// per-env default when non-empty, and verbose forces debug.
func New(env, level string, verbose bool) (*zap.Logger, error) {
	var cfg zap.Config

	switch env {
	case config.EnvLocal:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case config.EnvDev:
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	default:
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Sampling = nil
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.String("env", env)), nil
}

// FromConfig is New for a loaded configuration.
func FromConfig(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	return New(cfg.Env, cfg.LogLevel, verbose)
}
