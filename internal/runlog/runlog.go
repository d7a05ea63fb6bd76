// Package runlog builds the structured JSON log written alongside a run's
// artifacts.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel overrides the log level (debug, info, warn, error).
const EnvLevel = "CREW_LOG_LEVEL"

// New returns a logger appending JSON lines to path. The caller must Sync it
// before exit.
func New(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	if lvl := strings.TrimSpace(os.Getenv(EnvLevel)); lvl != "" {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLevel, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(l)
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}

// WithRun tags every entry with the run ID.
func WithRun(log *zap.Logger, runID string) *zap.Logger {
	return log.With(zap.String("run_id", runID))
}
