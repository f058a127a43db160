package application

import (
	"github.com/neekrasov/gate/internal/config"
	"github.com/neekrasov/gate/pkg/logger"
)

const defaultLogLevel = "info"

func initLogger(cfg *config.LoggingConfig) error {
	if cfg == nil {
		return logger.InitLogger(defaultLogLevel, "")
	}

	level := cfg.Level
	if level == "" {
		level = defaultLogLevel
	}

	return logger.InitLogger(level, cfg.Output)
}
