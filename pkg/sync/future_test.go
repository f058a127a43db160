package sync_test

import (
	"errors"
	"testing"
	"time"

	pkgsync "github.com/neekrasov/gate/pkg/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_SetBeforeGet(t *testing.T) {
	t.Parallel()

	future := pkgsync.NewFuture[string]()
	future.Set("done")

	assert.Equal(t, "done", future.Get())
}

func TestFuture_GetBlocksUntilSet(t *testing.T) {
	t.Parallel()

	future := pkgsync.NewFuture[error]()
	expected := errors.New("write failed")

	go func() {
		time.Sleep(10 * time.Millisecond)
		future.Set(expected)
	}()

	select {
	case err := <-future.Done():
		require.ErrorIs(t, err, expected)
	case <-time.After(time.Second):
		t.Fatal("future was never set")
	}
}

func TestFuture_SecondSetIgnored(t *testing.T) {
	t.Parallel()

	future := pkgsync.NewFuture[int]()
	future.Set(1)
	future.Set(2)

	assert.Equal(t, 1, future.Get())
}
