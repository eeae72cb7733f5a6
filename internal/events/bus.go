// Package events provides the typed publish/subscribe bus that decouples the
// network monitor from block processing. All handlers run sequentially on a
// single dispatch goroutine, so subscribers never observe two events being
// handled at once.
package events

import (
	"context"
	"sync"

	"github.com/yangcoin/bitcore-node/internal/model"
	"go.uber.org/zap"
)

// Type identifies the kind of an event.
type Type string

const (
	// TypeBlock carries a newly received block.
	TypeBlock Type = "block"
	// TypeReady signals the monitor established its initial connection.
	TypeReady Type = "ready"
	// TypeError carries a non-fatal network error.
	TypeError Type = "error"
	// TypeDisconnect signals the monitor lost its connection.
	TypeDisconnect Type = "disconnect"
	// TypeStop signals the monitor is shutting down.
	TypeStop Type = "stop"
	// TypeStats is the periodic statistics tick, routed through the bus so
	// stats handlers share the single processing thread.
	TypeStats Type = "stats"
)

// Event is a single bus item. Exactly the fields relevant to its Type are set.
type Event struct {
	Type  Type
	Block *model.Block
	Err   error
}

// Handler processes one event. An error is logged by the bus; converting it
// into a stop condition is the subscriber's responsibility.
type Handler func(ctx context.Context, ev Event) error

// Bus routes events to registered handlers on one goroutine.
type Bus struct {
	logger *zap.Logger

	mu        sync.Mutex
	handlers  map[Type][]Handler
	observers []Handler

	queue chan Event
	stop  chan struct{}
	wg    sync.WaitGroup
}

// New constructs a Bus with the given queue capacity.
func New(logger *zap.Logger, queueSize int) *Bus {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Bus{
		logger:   logger,
		handlers: make(map[Type][]Handler),
		queue:    make(chan Event, queueSize),
		stop:     make(chan struct{}),
	}
}

// Register subscribes a handler to one event type.
func (b *Bus) Register(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// OnAny subscribes a wildcard observer invoked after the typed handlers of
// every event. Used once for the observability sink.
func (b *Bus) OnAny(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, h)
}

// Process enqueues an event as if it had been received from the network.
// Blocks when the queue is full until the context is canceled or the bus
// stops.
func (b *Bus) Process(ctx context.Context, ev Event) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return context.Canceled
	case b.queue <- ev:
		return nil
	}
}

// Start launches the dispatch loop.
func (b *Bus) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop terminates the dispatch loop after the current event finishes.
func (b *Bus) Stop() {
	close(b.stop)
	b.wg.Wait()
}

func (b *Bus) run(ctx context.Context) {
	defer b.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-b.stop:
			return
		case ev := <-b.queue:
			b.dispatch(ctx, ev)
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, ev Event) {
	b.mu.Lock()
	handlers := b.handlers[ev.Type]
	observers := b.observers
	b.mu.Unlock()

	for _, h := range handlers {
		if err := h(ctx, ev); err != nil {
			b.logger.Error("event handler failed",
				zap.String("type", string(ev.Type)), zap.Error(err))
		}
	}
	for _, h := range observers {
		if err := h(ctx, ev); err != nil {
			b.logger.Error("event observer failed",
				zap.String("type", string(ev.Type)), zap.Error(err))
		}
	}
}
