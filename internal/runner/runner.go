package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neekrasov/gate/internal/compression"
	"github.com/neekrasov/gate/internal/journal"
	"github.com/neekrasov/gate/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNilGate - returned by New when no gate is given.
	ErrNilGate = errors.New("runner requires a gate")
	// ErrInvalidTask - returned by Run when a task lacks a name or a command.
	ErrInvalidTask = errors.New("invalid task")
	// ErrNotStarted - set on results of tasks that were never admitted.
	ErrNotStarted = errors.New("task was not started")
)

type (
	// Gate - admission control for tasks. *sync.Semaphore satisfies it.
	Gate interface {
		AcquireContext(ctx context.Context, label string) error
		Release() error
	}

	// Executor - runs a single task and reports its combined output and exit code.
	Executor interface {
		Execute(ctx context.Context, task Task) ([]byte, int, error)
	}

	// Recorder - persists finished runs.
	Recorder interface {
		Record(entry journal.Entry) (uint64, error)
	}
)

// Task - an external command to run under the gate.
type Task struct {
	Name    string
	Command string
	Args    []string
	Timeout time.Duration
}

// Result - outcome of a task. Err is set when the task failed or never started.
// Output is kept uncompressed; Compression names the algorithm used for the
// journal copy, and JournalID is zero when the run was not recorded.
type Result struct {
	Task        Task
	StartedAt   time.Time
	FinishedAt  time.Time
	ExitCode    int
	Output      []byte
	Compression compression.CompressionType
	Err         error
	JournalID   uint64
}

// Runner - runs tasks with at most as many in flight as the gate admits.
type Runner struct {
	gate            Gate
	executor        Executor
	compressor      compression.Compressor
	compressionType compression.CompressionType
	recorder        Recorder
	defaultTimeout  time.Duration
}

// New - creates a Runner admitting tasks through gate.
func New(gate Gate, opts ...Option) (*Runner, error) {
	if gate == nil {
		return nil, ErrNilGate
	}

	r := &Runner{
		gate:            gate,
		executor:        CommandExecutor{},
		compressor:      new(compression.NoopCompressor),
		compressionType: compression.None,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Run - starts tasks in list order, each one after it obtains a permit, and
// waits for all started tasks to finish. Task failures are reported in the
// results; the returned error covers dispatch failures only.
func (r *Runner) Run(ctx context.Context, tasks []Task) ([]Result, error) {
	for i, task := range tasks {
		if task.Name == "" || task.Command == "" {
			return nil, fmt.Errorf("%w: task #%d needs both name and command", ErrInvalidTask, i)
		}
	}

	results := make([]Result, len(tasks))
	group, groupCtx := errgroup.WithContext(ctx)

	var dispatchErr error
	for i, task := range tasks {
		if err := r.admit(groupCtx, task); err != nil {
			dispatchErr = err
			for j := i; j < len(tasks); j++ {
				results[j] = Result{Task: tasks[j], Err: ErrNotStarted}
			}

			logger.Warn("dispatch stopped",
				zap.String("task", task.Name),
				zap.Int("not_started", len(tasks)-i),
				zap.Error(err))
			break
		}

		group.Go(func() error {
			results[i] = r.execute(groupCtx, task)

			if err := r.gate.Release(); err != nil {
				return fmt.Errorf("release permit for %q: %w", task.Name, err)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, errors.Join(dispatchErr, err)
	}

	return results, dispatchErr
}

// admit - obtains a permit for task. A permit granted after ctx ended is given back.
func (r *Runner) admit(ctx context.Context, task Task) error {
	if err := r.gate.AcquireContext(ctx, task.Name); err != nil {
		return fmt.Errorf("acquire permit for %q: %w", task.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return errors.Join(
			fmt.Errorf("acquire permit for %q: %w", task.Name, err),
			r.gate.Release(),
		)
	}

	return nil
}

func (r *Runner) execute(ctx context.Context, task Task) Result {
	timeout := task.Timeout
	if timeout == 0 {
		timeout = r.defaultTimeout
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result := Result{Task: task, StartedAt: time.Now()}
	logger.Info("task started", zap.String("task", task.Name), zap.String("command", task.Command))

	result.Output, result.ExitCode, result.Err = r.executor.Execute(ctx, task)
	result.FinishedAt = time.Now()

	fields := []zap.Field{
		zap.String("task", task.Name),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.FinishedAt.Sub(result.StartedAt)),
	}
	if result.Err != nil {
		logger.Warn("task failed", append(fields, zap.Error(result.Err))...)
	} else {
		logger.Info("task finished", fields...)
	}

	if r.recorder != nil {
		result.Compression = r.compressionType
		id, err := r.record(result)
		if err != nil {
			logger.Error("failed to record task run", zap.String("task", task.Name), zap.Error(err))
		}
		result.JournalID = id
	}

	return result
}

func (r *Runner) record(result Result) (uint64, error) {
	output, err := r.compressor.Compress(result.Output)
	if err != nil {
		return 0, fmt.Errorf("compress output: %w", err)
	}

	entry := journal.Entry{
		Task:        result.Task.Name,
		Command:     result.Task.Command,
		Args:        result.Task.Args,
		StartedAt:   result.StartedAt,
		FinishedAt:  result.FinishedAt,
		ExitCode:    result.ExitCode,
		Output:      output,
		Compression: string(result.Compression),
	}
	if result.Err != nil {
		entry.Error = result.Err.Error()
	}

	return r.recorder.Record(entry)
}
