package sync

import (
	"context"
	"testing"
	"time"

	"github.com/neekrasov/gate/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queue starts AcquireContext in the background and waits until the request is queued.
func queue(t *testing.T, s *Semaphore, ctx context.Context, label string) <-chan error {
	t.Helper()

	before := s.Waiting()
	result := make(chan error, 1)
	go func() {
		result <- s.AcquireContext(ctx, label)
	}()

	require.Eventually(t, func() bool {
		return s.Waiting() == before+1
	}, time.Second, time.Millisecond)

	return result
}

// Cancellation is observed first, then the permit is handed over before the
// canceled waiter gets the lock back. The waiter must pass the permit on.
func TestSemaphore_CancelAfterHandOff(t *testing.T) {
	t.Parallel()
	logger.MockLogger()

	tests := []struct {
		name         string
		queueNext    bool
		expectHeld   int
		expectNextOK bool
	}{
		{name: "permit returns to the pool", expectHeld: 0},
		{name: "permit goes to the next waiter", queueNext: true, expectHeld: 1, expectNextOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := NewSemaphore(1)
			require.NoError(t, err)
			s.Acquire("holder")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			canceled := queue(t, s, ctx, "canceled")

			var next <-chan error
			if tt.queueNext {
				next = queue(t, s, context.Background(), "next")
			}

			s.mu.Lock()
			cancel()
			// Let the canceled waiter leave its select and park on s.mu.
			time.Sleep(50 * time.Millisecond)
			require.NoError(t, s.releaseLocked())
			s.mu.Unlock()

			select {
			case err := <-canceled:
				require.ErrorIs(t, err, context.Canceled)
			case <-time.After(time.Second):
				t.Fatal("canceled waiter did not return")
			}

			if tt.expectNextOK {
				select {
				case err := <-next:
					require.NoError(t, err)
				case <-time.After(time.Second):
					t.Fatal("next waiter was not granted the passed-on permit")
				}
			}

			assert.Equal(t, tt.expectHeld, s.Held())
			assert.Equal(t, 0, s.Waiting())

			if tt.expectHeld == 1 {
				require.NoError(t, s.Release())
			}
			require.ErrorIs(t, s.Release(), ErrUnbalancedRelease)
		})
	}
}

func TestSemaphore_Tickets(t *testing.T) {
	t.Parallel()
	logger.MockLogger()

	s, err := NewSemaphore(1)
	require.NoError(t, err)
	s.Acquire("holder")

	for _, label := range []string{"first", "second", "third"} {
		queue(t, s, context.Background(), label)
	}

	var tickets []int64
	WithLock(&s.mu, func() {
		for e := s.waiters.Front(); e != nil; e = e.Next() {
			tickets = append(tickets, e.Value.(*waiter).ticket)
		}
	})
	assert.Equal(t, []int64{1, 2, 3}, tickets)

	for range tickets {
		require.NoError(t, s.Release())
	}
	require.Eventually(t, func() bool { return s.Waiting() == 0 }, time.Second, time.Millisecond)
	assert.Equal(t, 1, s.Held())
}
