package locking

import (
	"context"
	"sync"
)

// InProcessLocker implements Locker with a mutex-guarded key set. It gives
// real mutual exclusion within one process and is the configured choice for
// tests and single-node deployments without Postgres. It cannot coordinate
// across processes.
type InProcessLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewInProcessLocker() *InProcessLocker {
	return &InProcessLocker{held: make(map[string]struct{})}
}

func (l *InProcessLocker) TryAcquire(_ context.Context, key string) (Lease, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, false, nil
	}
	l.held[key] = struct{}{}

	return &inProcessLease{locker: l, key: key}, true, nil
}

type inProcessLease struct {
	locker *InProcessLocker
	key    string
	once   sync.Once
}

func (le *inProcessLease) Release(_ context.Context) {
	le.once.Do(func() {
		le.locker.mu.Lock()
		delete(le.locker.held, le.key)
		le.locker.mu.Unlock()
	})
}
