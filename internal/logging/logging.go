package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/config"
)

// New builds a JSON file logger. The terminal belongs to the UI, so every
// output path points at cfg.LogPath.
func New(cfg config.Config) (*zap.Logger, error) {
	if cfg.LogPath == "" {
		return zap.NewNop(), nil
	}
	if err := config.EnsureDir(cfg.LogPath); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{cfg.LogPath}
	zcfg.ErrorOutputPaths = []string{cfg.LogPath}
	if cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.With(zap.String("app", "lingua")), nil
}
