// Package lockx provides short-lived named locks used to serialize
// check-then-insert sequences such as duplicate application detection.
package lockx

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Abraxas-365/devjobs/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("LOCK")

var CodeNotAcquired = ErrRegistry.Register("NOT_ACQUIRED", errx.TypeConflict, http.StatusConflict, "Resource is busy, retry later")

func ErrNotAcquired() *errx.Error {
	return ErrRegistry.New(CodeNotAcquired)
}

// Locker acquires a named lock. The returned release func is safe to call once.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// WithLock runs fn while holding key.
func WithLock(ctx context.Context, l Locker, key string, fn func(ctx context.Context) error) error {
	release, err := l.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx)
}

// MemoryLocker is an in-process keyed mutex. Entries are dropped once no
// caller holds or waits on the key.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*memLock
}

type memLock struct {
	ch      chan struct{}
	waiters int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*memLock)}
}

func (m *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &memLock{ch: make(chan struct{}, 1)}
		m.locks[key] = l
	}
	l.waiters++
	m.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		m.leave(key, l)
		return nil, ErrNotAcquired().WithDetail("key", key).WithCause(ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.ch
			m.leave(key, l)
		})
	}, nil
}

func (m *MemoryLocker) leave(key string, l *memLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.waiters--
	if l.waiters == 0 {
		delete(m.locks, key)
	}
}

// IsNotAcquired reports whether err came from a lock that timed out.
func IsNotAcquired(err error) bool {
	return errx.IsCode(err, CodeNotAcquired)
}

// retryDelay is the polling interval used by distributed lockers.
const retryDelay = 25 * time.Millisecond
