package application

import (
	"github.com/neekrasov/gate/internal/compression"
	"github.com/neekrasov/gate/internal/config"
	"github.com/neekrasov/gate/internal/journal"
	"github.com/neekrasov/gate/internal/runner"
	"github.com/neekrasov/gate/pkg/logger"
	"github.com/neekrasov/gate/pkg/sync"
	"go.uber.org/zap"
)

func initRunner(gate *sync.Semaphore, j *journal.Journal, cfg *config.RunnerConfig) (*runner.Runner, error) {
	opts := make([]runner.Option, 0)
	if j != nil {
		opts = append(opts, runner.WithRecorder(j))
	}

	if cfg != nil {
		if timeout := cfg.DefaultTimeout; timeout != 0 {
			logger.Debug("set default task timeout", zap.Duration("default_timeout", timeout))
			opts = append(opts, runner.WithDefaultTimeout(timeout))
		}

		if ct := compression.CompressionType(cfg.Compression); ct != "" {
			compressor, err := compression.New(ct)
			if err != nil {
				return nil, err
			}

			logger.Debug("set output compression", zap.String("compression", cfg.Compression))
			opts = append(opts, runner.WithCompression(ct, compressor))
		}
	}

	return runner.New(gate, opts...)
}
