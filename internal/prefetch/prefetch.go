// Package prefetch keeps at most one fetch running ahead of the consumer.
package prefetch

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Fetcher produces the next item.
type Fetcher[T any] func(ctx context.Context) (T, error)

type pending[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Slot holds a single in-flight fetch. The zero value is not usable; call
// NewSlot.
//
// Slot is safe for concurrent use.
type Slot[T any] struct {
	logger *zap.Logger

	mu    sync.Mutex
	entry *pending[T]
}

// NewSlot returns an empty slot. A nil logger discards degraded-fetch logs.
func NewSlot[T any](logger *zap.Logger) *Slot[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Slot[T]{logger: logger}
}

// Arm starts fetch on its own goroutine and stores its eventual result,
// replacing any entry that was not consumed. The replaced fetch is left to
// finish and its result is dropped.
func (s *Slot[T]) Arm(ctx context.Context, fetch Fetcher[T]) {
	p := &pending[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.val, p.err = fetch(ctx)
	}()

	s.mu.Lock()
	s.entry = p
	s.mu.Unlock()
}

// Armed reports whether an unconsumed entry is stored.
func (s *Slot[T]) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry != nil
}

// ConsumeOrFetch takes the stored entry, waits for it and returns its
// value. The slot is empty afterwards whatever the outcome. If the stored
// fetch failed, or nothing was stored, fetch is called directly and its
// result returned.
func (s *Slot[T]) ConsumeOrFetch(ctx context.Context, fetch Fetcher[T]) (T, error) {
	s.mu.Lock()
	p := s.entry
	s.entry = nil
	s.mu.Unlock()

	if p != nil {
		select {
		case <-p.done:
			if p.err == nil {
				return p.val, nil
			}
			s.logger.Debug("prefetch degraded, fetching directly",
				zap.String("category", "degraded"),
				zap.Error(p.err))
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
	return fetch(ctx)
}

// Reset drops any stored entry.
func (s *Slot[T]) Reset() {
	s.mu.Lock()
	s.entry = nil
	s.mu.Unlock()
}
