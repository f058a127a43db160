package sync_test

import (
	"errors"
	"fmt"

	pkgsync "github.com/neekrasov/gate/pkg/sync"
)

func ExampleSemaphore() {
	sem, err := pkgsync.NewSemaphore(2)
	if err != nil {
		fmt.Println(err)
		return
	}

	sem.Acquire("a")
	sem.Acquire("b")
	fmt.Println(sem)

	// Full: TryAcquire reports back-pressure instead of queueing.
	fmt.Println("third permit:", sem.TryAcquire("c"))

	_ = sem.Release()
	_ = sem.Release()
	fmt.Println(sem)

	if err := sem.Release(); errors.Is(err, pkgsync.ErrUnbalancedRelease) {
		fmt.Println("extra release:", err)
	}

	// Output:
	// Semaphore(2/2, waiting=0)
	// third permit: false
	// Semaphore(0/2, waiting=0)
	// extra release: release without matching acquire
}
