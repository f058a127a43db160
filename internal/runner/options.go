package runner

import (
	"time"

	"github.com/neekrasov/gate/internal/compression"
)

// Option is a functional option type for configuring a Runner instance.
type Option func(*Runner)

// WithExecutor replaces the os/exec based executor.
func WithExecutor(executor Executor) Option {
	return func(r *Runner) {
		r.executor = executor
	}
}

// WithRecorder stores every finished run.
func WithRecorder(recorder Recorder) Option {
	return func(r *Runner) {
		r.recorder = recorder
	}
}

// WithCompression sets how recorded output is compressed.
func WithCompression(ct compression.CompressionType, compressor compression.Compressor) Option {
	return func(r *Runner) {
		r.compressionType = ct
		r.compressor = compressor
	}
}

// WithDefaultTimeout bounds tasks that do not set their own timeout.
func WithDefaultTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.defaultTimeout = timeout
	}
}
