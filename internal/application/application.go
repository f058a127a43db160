package application

import (
	"context"
	"fmt"

	"github.com/neekrasov/gate/internal/compression"
	"github.com/neekrasov/gate/internal/config"
	"github.com/neekrasov/gate/internal/journal"
	"github.com/neekrasov/gate/internal/runner"
	"github.com/neekrasov/gate/pkg/logger"
	"go.uber.org/zap"
)

// Application - wires config, logging, the gate and the runner together.
type Application struct {
	cfg *config.Config
}

// New - creates and returns a new instance of Application.
func New(cfg *config.Config) *Application {
	return &Application{
		cfg: cfg,
	}
}

// Run - runs tasks under a gate built from the config and logs a summary.
func (a *Application) Run(ctx context.Context, tasks []config.TaskConfig) ([]runner.Result, error) {
	if err := initLogger(a.cfg.Logging); err != nil {
		return nil, fmt.Errorf("initialize logger failed: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gate, err := initGate(a.cfg.Gate)
	if err != nil {
		return nil, fmt.Errorf("initialize gate failed: %w", err)
	}

	j, err := initJournal(a.cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("initialize journal failed: %w", err)
	}
	defer func() {
		if err := j.Close(); err != nil {
			logger.Warn("failed to close journal", zap.Error(err))
		}
	}()

	r, err := initRunner(gate, j, a.cfg.Runner)
	if err != nil {
		return nil, fmt.Errorf("initialize runner failed: %w", err)
	}

	logger.Info("running tasks",
		zap.Int("tasks", len(tasks)),
		zap.Int("capacity", gate.Capacity()))

	results, err := r.Run(ctx, toRunnerTasks(tasks))
	for _, result := range results {
		if result.Err != nil {
			logger.Warn("task summary",
				zap.String("task", result.Task.Name),
				zap.Int("exit_code", result.ExitCode),
				zap.Error(result.Err))
			continue
		}

		logger.Info("task summary",
			zap.String("task", result.Task.Name),
			zap.Duration("duration", result.FinishedAt.Sub(result.StartedAt)))
	}

	return results, err
}

// History - returns recorded runs with their output decompressed.
func (a *Application) History() ([]journal.Entry, error) {
	if a.cfg.Journal == nil || a.cfg.Journal.Path == "" {
		return nil, journal.ErrEmptyPath
	}

	j, err := journal.Open(a.cfg.Journal.Path)
	if err != nil {
		return nil, err
	}
	defer j.Close()

	entries, err := j.List()
	if err != nil {
		return nil, err
	}

	for i, entry := range entries {
		compressor, err := compression.New(compression.CompressionType(entry.Compression))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", entry.ID, err)
		}

		if entries[i].Output, err = compressor.Decompress(entry.Output); err != nil {
			return nil, fmt.Errorf("entry %d: decompress output: %w", entry.ID, err)
		}
	}

	return entries, nil
}

func toRunnerTasks(tasks []config.TaskConfig) []runner.Task {
	converted := make([]runner.Task, 0, len(tasks))
	for _, task := range tasks {
		converted = append(converted, runner.Task{
			Name:    task.Name,
			Command: task.Command,
			Args:    task.Args,
			Timeout: task.Timeout,
		})
	}

	return converted
}
