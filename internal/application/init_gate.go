package application

import (
	"errors"

	"github.com/neekrasov/gate/internal/config"
	"github.com/neekrasov/gate/pkg/logger"
	"github.com/neekrasov/gate/pkg/sync"
	"go.uber.org/zap"
)

func initGate(cfg *config.GateConfig) (*sync.Semaphore, error) {
	if cfg == nil {
		return nil, errors.New("empty gate config")
	}

	logger.Debug("init gate", zap.Int("capacity", cfg.Capacity))

	return sync.NewSemaphore(cfg.Capacity)
}
