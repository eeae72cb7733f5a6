// Package batcher provides a generic buffered batch writer with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Batcher collects items and hands them to a flush function once a batch is
// full or the flush interval elapses. Stop drains the buffer, so a caller
// that stops the batcher and waits on its own completion tracking gets a
// fully flushed batch.
type Batcher[T any] struct {
	logger   *zap.Logger
	flush    func(context.Context, []T) error
	capacity int
	interval time.Duration
	limiter  ratelimit.Limiter

	items chan T
	stop  chan struct{}
	wg    sync.WaitGroup
}

// New constructs a Batcher flushing at most rps batches per second.
func New[T any](logger *zap.Logger, flush func(context.Context, []T) error, capacity int, interval time.Duration, rps int) *Batcher[T] {
	return &Batcher[T]{
		logger:   logger,
		flush:    flush,
		capacity: capacity,
		interval: interval,
		limiter:  ratelimit.New(rps),
		items:    make(chan T, capacity*2),
		stop:     make(chan struct{}),
	}
}

// Start begins the background flush loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes any buffered items and terminates the loop.
func (b *Batcher[T]) Stop() {
	close(b.stop)
	b.wg.Wait()
}

// Add queues one item. It fails once the batcher is stopped or the context
// is canceled.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.items <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	buf := make([]T, 0, b.capacity)
	flush := func() {
		if len(buf) == 0 {
			return
		}
		b.limiter.Take()
		if err := b.flush(ctx, buf); err != nil {
			b.logger.Error("batch not flushed", zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
			b.drain(&buf)
			flush()
			return
		case <-b.stop:
			b.drain(&buf)
			flush()
			return
		case item := <-b.items:
			buf = append(buf, item)
			if len(buf) >= b.capacity {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// drain moves any items still queued at stop time into the buffer.
func (b *Batcher[T]) drain(buf *[]T) {
	for {
		select {
		case item := <-b.items:
			*buf = append(*buf, item)
		default:
			return
		}
	}
}
