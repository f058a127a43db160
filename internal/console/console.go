package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/neekrasov/gate/pkg/logger"
	pkgsync "github.com/neekrasov/gate/pkg/sync"
	"go.uber.org/zap"
)

var ErrWriteLineFailed = errors.New("write line failed")

// Console - interactive driver for a single in-process semaphore.
type Console struct {
	sem *pkgsync.Semaphore

	mu  sync.Mutex
	out io.Writer

	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup
}

// New - creates a Console writing asynchronous grant notices to out.
func New(sem *pkgsync.Semaphore, out io.Writer) *Console {
	ctx, cancel := context.WithCancel(context.Background())

	return &Console{
		sem:    sem,
		out:    out,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Execute - runs one input line and returns the response. The second result
// reports whether the console should stop.
func (c *Console) Execute(line string) (string, bool) {
	cmd, err := Parse(line)
	if err != nil {
		return "error: " + err.Error(), false
	}

	switch cmd.ID {
	case AcquireCommandID:
		return c.acquire(cmd.Args[0]), false
	case ReleaseCommandID:
		if err := c.sem.Release(); err != nil {
			return "error: " + err.Error(), false
		}
		return "ok", false
	case StatsCommandID:
		return c.sem.String(), false
	case WaitersCommandID:
		pending := c.sem.Pending()
		if len(pending) == 0 {
			return "(none)", false
		}
		return strings.Join(pending, " "), false
	case HelpCommandID:
		return helpText, false
	case ExitCommandID:
		return "bye", true
	}

	return "error: " + ErrUnknownCommand.Error(), false
}

func (c *Console) acquire(label string) string {
	if c.sem.TryAcquire(label) {
		return "granted " + label
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()

		if err := c.sem.AcquireContext(c.ctx, label); err != nil {
			logger.Debug("console acquire abandoned", zap.String("label", label), zap.Error(err))
			return
		}

		if err := c.writeLine("granted " + label); err != nil {
			logger.Warn("failed to print grant", zap.String("label", label), zap.Error(err))
		}
	}()

	return "queued " + label
}

func (c *Console) writeLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := io.WriteString(c.out, line+"\n")
	return err
}

// Run - reads commands from rl until exit, interrupt or end of input.
func (c *Console) Run(rl *readline.Instance) error {
	defer c.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}

			if err = c.writeLine(fmt.Sprintf("failed to read stdin: %s", err.Error())); err != nil {
				return errors.Join(ErrWriteLineFailed, err)
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		response, exit := c.Execute(line)
		if err := c.writeLine(response); err != nil {
			return errors.Join(ErrWriteLineFailed, err)
		}

		if exit {
			return nil
		}
	}
}

// Close - abandons queued acquires and waits for their goroutines.
func (c *Console) Close() {
	c.cancel()
	c.pending.Wait()
}
