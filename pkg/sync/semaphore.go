package sync

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/neekrasov/gate/pkg/logger"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCapacity - returned by NewSemaphore when the capacity is below one.
	ErrInvalidCapacity = errors.New("semaphore capacity must be at least 1")
	// ErrUnbalancedRelease - returned by Release when no permit is held and nobody waits.
	ErrUnbalancedRelease = errors.New("release without matching acquire")
)

// waiter - a queued request for a permit.
type waiter struct {
	ticket  int64
	label   string
	granted *FutureSignal
	// elem is nil once the waiter has been granted or withdrawn.
	elem *list.Element
}

// Semaphore limits how many holders may own a permit at the same time.
// Requesters that find no free permit are queued and admitted strictly in
// the order they called Acquire.
//
// A nil *Semaphore is an unlimited gate: acquisitions always succeed and
// Release is a no-op.
type Semaphore struct {
	capacity int

	mu sync.Mutex
	// INVARIANT: 0 <= held <= capacity.
	// INVARIANT: waiters is non-empty only while held == capacity.
	held    int
	waiters *list.List
	// lastTicket tags queued waiters in logs.
	lastTicket int64
}

// NewSemaphore creates a Semaphore with the given number of permits.
func NewSemaphore(capacity int) (*Semaphore, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	return &Semaphore{
		capacity: capacity,
		waiters:  list.New(),
	}, nil
}

// Acquire obtains one permit, blocking until one is handed over if all
// permits are held. The label only shows up in logs and diagnostics.
func (s *Semaphore) Acquire(label string) {
	// A Background context never ends, so AcquireContext cannot fail here.
	_ = s.AcquireContext(context.Background(), label)
}

// AcquireContext is Acquire with cancellation. When ctx ends while the
// caller is queued, the request is withdrawn and ctx.Err() is returned; no
// permit is held by the caller in that case.
func (s *Semaphore) AcquireContext(ctx context.Context, label string) error {
	if s == nil {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var w *waiter
	WithLock(&s.mu, func() {
		if s.held < s.capacity {
			s.held++
			logger.Debug("permit granted",
				zap.String("label", label), zap.Int("held", s.held))
			return
		}

		s.lastTicket++
		w = &waiter{
			ticket:  s.lastTicket,
			label:   label,
			granted: NewFuture[struct{}](),
		}
		w.elem = s.waiters.PushBack(w)
		logger.Debug("permit queued",
			zap.String("label", label),
			zap.Int64("ticket", w.ticket),
			zap.Int("position", s.waiters.Len()))
	})

	if w == nil {
		return nil
	}

	select {
	case <-w.granted.Done():
		return nil
	case <-ctx.Done():
	}

	var releaseErr error
	WithLock(&s.mu, func() {
		if w.elem != nil {
			s.waiters.Remove(w.elem)
			w.elem = nil
			logger.Debug("queued acquire withdrawn",
				zap.String("label", label), zap.Int64("ticket", w.ticket))
			return
		}

		// Granted between ctx.Done and taking the lock: pass the permit on.
		releaseErr = s.releaseLocked()
	})

	if releaseErr != nil {
		return errors.Join(ctx.Err(), releaseErr)
	}

	return ctx.Err()
}

// TryAcquire obtains a permit only if one is free right now. It never
// overtakes queued waiters.
func (s *Semaphore) TryAcquire(label string) bool {
	if s == nil {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.held >= s.capacity {
		return false
	}

	s.held++
	logger.Debug("permit granted",
		zap.String("label", label), zap.Int("held", s.held))

	return true
}

// Release returns one permit. If requesters are queued, the earliest one
// receives the permit directly and the held count stays the same.
// Releasing with nothing held is a caller bug and yields ErrUnbalancedRelease.
func (s *Semaphore) Release() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.releaseLocked()
}

func (s *Semaphore) releaseLocked() error {
	if front := s.waiters.Front(); front != nil {
		w := s.waiters.Remove(front).(*waiter)
		w.elem = nil
		w.granted.Set(struct{}{})
		logger.Debug("permit handed off",
			zap.String("label", w.label),
			zap.Int64("ticket", w.ticket),
			zap.Int("waiting", s.waiters.Len()))

		return nil
	}

	if s.held == 0 {
		logger.Error("unbalanced semaphore release", zap.Int("capacity", s.capacity))
		return ErrUnbalancedRelease
	}

	s.held--
	logger.Debug("permit released", zap.Int("held", s.held))

	return nil
}

// Capacity returns the maximum number of concurrent holders.
func (s *Semaphore) Capacity() int {
	if s == nil {
		return 0
	}

	return s.capacity
}

// Held returns the number of permits currently granted.
func (s *Semaphore) Held() int {
	if s == nil {
		return 0
	}

	return LockedValue(&s.mu, func() int { return s.held })
}

// Waiting returns the number of queued requesters.
func (s *Semaphore) Waiting() int {
	if s == nil {
		return 0
	}

	return LockedValue(&s.mu, s.waiters.Len)
}

// Pending returns the labels of queued requesters in grant order.
func (s *Semaphore) Pending() []string {
	if s == nil {
		return nil
	}

	return LockedValue(&s.mu, func() []string {
		labels := make([]string, 0, s.waiters.Len())
		for e := s.waiters.Front(); e != nil; e = e.Next() {
			labels = append(labels, e.Value.(*waiter).label)
		}

		return labels
	})
}

// String renders the state as "Semaphore(held/capacity, waiting=n)".
func (s *Semaphore) String() string {
	if s == nil {
		return "Semaphore(unlimited)"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fmt.Sprintf("Semaphore(%d/%d, waiting=%d)", s.held, s.capacity, s.waiters.Len())
}
