package sync

import "sync"

// FutureSignal - a Future carrying no value, only the fact that it fired.
type FutureSignal = Future[struct{}]

// Future - one-shot value passed from a single producer to a single consumer.
type Future[T any] struct {
	result chan T
	once   sync.Once
}

// NewFuture - creates an unset Future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{result: make(chan T, 1)}
}

// Get - blocks until the value is set.
func (f *Future[T]) Get() T {
	return <-f.result
}

// Done - returns a channel that yields the value once it is set.
func (f *Future[T]) Done() <-chan T {
	return f.result
}

// Set - stores the value. Only the first call has an effect and it never blocks.
func (f *Future[T]) Set(value T) {
	f.once.Do(func() {
		f.result <- value
		close(f.result)
	})
}
