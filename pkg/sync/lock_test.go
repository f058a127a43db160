package sync_test

import (
	"sync"
	"testing"

	pkgsync "github.com/neekrasov/gate/pkg/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLock(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	locked := false

	pkgsync.WithLock(&mu, func() {
		locked = !mu.TryLock()
	})

	require.True(t, locked)
	require.True(t, mu.TryLock(), "lock must be released after the action")
}

func TestWithLock_NilAction(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	pkgsync.WithLock(&mu, nil)
}

func TestLockedValue(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	counter := 41

	value := pkgsync.LockedValue(&mu, func() int {
		counter++
		return counter
	})

	assert.Equal(t, 42, value)
	assert.True(t, mu.TryLock())
}
