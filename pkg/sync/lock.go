package sync

import "sync"

// WithLock - acquires the given lock, executes the provided action.
func WithLock(l sync.Locker, action func()) {
	if action == nil {
		return
	}

	l.Lock()
	defer l.Unlock()
	action()
}

// LockedValue - acquires the given lock and returns what read produces under it.
func LockedValue[T any](l sync.Locker, read func() T) T {
	l.Lock()
	defer l.Unlock()

	return read()
}
