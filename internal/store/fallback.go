package store

import (
	"context"
	"sync"

	"github.com/abhisek/quizionix/internal/logging"
)

// Fallback wraps a Backend so storage failures never reach the caller.
// Every write lands in an in-memory copy first; when the backend fails,
// reads are served from that copy and the failure is logged.
type Fallback struct {
	inner Backend
	log   *logging.Logger

	mu       sync.Mutex
	mem      map[string]string
	removed  map[string]bool
	degraded bool
}

// NewFallback wraps inner. A nil logger discards failures.
func NewFallback(inner Backend, log *logging.Logger) *Fallback {
	return &Fallback{
		inner:   inner,
		log:     logging.OrNop(log),
		mem:     make(map[string]string),
		removed: make(map[string]bool),
	}
}

// Name returns the wrapped backend's name.
func (f *Fallback) Name() string { return f.inner.Name() }

// Degraded reports whether any backend operation has failed.
func (f *Fallback) Degraded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded
}

func (f *Fallback) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := f.inner.Get(ctx, key)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.fail("get", key, err)
		if f.removed[key] {
			return "", false, nil
		}
		v, ok = f.mem[key]
		return v, ok, nil
	}
	if ok {
		f.mem[key] = v
	}
	return v, ok, nil
}

func (f *Fallback) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.mem[key] = value
	delete(f.removed, key)
	f.mu.Unlock()

	if err := f.inner.Set(ctx, key, value); err != nil {
		f.mu.Lock()
		f.fail("set", key, err)
		f.mu.Unlock()
	}
	return nil
}

func (f *Fallback) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	delete(f.mem, key)
	f.removed[key] = true
	f.mu.Unlock()

	if err := f.inner.Remove(ctx, key); err != nil {
		f.mu.Lock()
		f.fail("remove", key, err)
		f.mu.Unlock()
	}
	return nil
}

func (f *Fallback) Clear(ctx context.Context) error {
	f.mu.Lock()
	for k := range f.mem {
		f.removed[k] = true
	}
	clear(f.mem)
	f.mu.Unlock()

	if err := f.inner.Clear(ctx); err != nil {
		f.mu.Lock()
		f.fail("clear", "", err)
		f.mu.Unlock()
	}
	return nil
}

func (f *Fallback) Close() error {
	return f.inner.Close()
}

// fail must be called with f.mu held.
func (f *Fallback) fail(op, key string, err error) {
	f.degraded = true
	f.log.Warn("storage operation failed, continuing in memory",
		"backend", f.inner.Name(), "op", op, "key", key, "error", err)
}
