package netmon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/yangcoin/bitcore-node/internal/events"
	"github.com/yangcoin/bitcore-node/internal/model"
	"github.com/yangcoin/bitcore-node/pkg/workerpool"
	"go.uber.org/zap"
)

// Monitor follows the trusted node's best chain and serves locator-based
// block requests. Poll results and resolved requests are published as events;
// the monitor never calls into the sync node directly.
type Monitor struct {
	logger  *zap.Logger
	bus     *events.Bus
	client  RPCClient
	metrics Metrics

	pollInterval time.Duration
	batchLimit   int64
	workers      int

	requests chan []chainhash.Hash

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMonitor builds a Monitor publishing to the given bus.
func NewMonitor(client RPCClient, bus *events.Bus, metrics Metrics, logger *zap.Logger) (*Monitor, error) {
	if client == nil {
		return nil, errors.New("monitor rpc client is required")
	}
	if bus == nil {
		return nil, errors.New("monitor event bus is required")
	}
	if metrics == nil {
		return nil, errors.New("monitor metrics is required")
	}

	return &Monitor{
		logger:       logger.Named("monitor"),
		bus:          bus,
		client:       client,
		metrics:      metrics,
		pollInterval: defaultPollInterval,
		batchLimit:   requestBatchLimit,
		workers:      fetchWorkerCount,
		requests:     make(chan []chainhash.Hash, 1),
	}, nil
}

// Start launches the poll loop. A ready event is published after the first
// successful poll, a stop event when the loop terminates.
func (m *Monitor) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run(ctx)
	return nil
}

// Abort terminates the monitor, canceling in-flight network operations.
func (m *Monitor) Abort(reason error) {
	m.logger.Warn("aborting network monitor", zap.Error(reason))

	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// RequestBlocks schedules a locator-based catch-up. At most one request is
// pending at a time; a request arriving while one is queued is dropped, since
// the node re-requests from its tip whenever a gap remains.
func (m *Monitor) RequestBlocks(_ context.Context, locator []chainhash.Hash) error {
	if len(locator) == 0 {
		return errors.New("empty block locator")
	}

	select {
	case m.requests <- locator:
	default:
		m.logger.Debug("block request already pending")
	}
	return nil
}

func (m *Monitor) run(ctx context.Context) {
	defer m.wg.Done()
	defer m.publishStop()

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	var (
		connected bool
		failures  int
		lastTip   chainhash.Hash
	)

	poll := func() {
		hash, err := m.client.GetBestBlockHash()
		if err != nil {
			failures++
			m.publish(ctx, events.Event{Type: events.TypeError, Err: err})
			if connected && failures >= disconnectThreshold {
				connected = false
				m.publish(ctx, events.Event{Type: events.TypeDisconnect})
			}
			return
		}
		failures = 0
		if !connected {
			connected = true
			m.publish(ctx, events.Event{Type: events.TypeReady})
		}
		if *hash == lastTip {
			return
		}

		msg, err := m.client.GetBlock(hash)
		if err != nil {
			m.publish(ctx, events.Event{Type: events.TypeError, Err: err})
			return
		}
		lastTip = *hash
		m.publish(ctx, events.Event{Type: events.TypeBlock, Block: model.NewBlock(msg)})
		m.metrics.ObserveDelivered(1)
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return
		case locator := <-m.requests:
			m.serveRequest(ctx, locator)
		case <-ticker.C:
			poll()
		}
	}
}

func (m *Monitor) serveRequest(ctx context.Context, locator []chainhash.Hash) {
	started := time.Now()
	blocks, err := m.fetchSuccessors(ctx, locator)
	m.metrics.ObserveRequest(err, started)
	if err != nil {
		m.logger.Error("resolve block locator failed", zap.Error(err))
		m.publish(ctx, events.Event{Type: events.TypeError, Err: err})
		return
	}

	for _, b := range blocks {
		m.publish(ctx, events.Event{Type: events.TypeBlock, Block: b})
	}
	m.metrics.ObserveDelivered(len(blocks))
}

// fetchSuccessors finds the highest locator hash on the peer's main chain and
// fetches up to batchLimit blocks after it, in height order.
func (m *Monitor) fetchSuccessors(ctx context.Context, locator []chainhash.Hash) ([]*model.Block, error) {
	forkHeight := int64(-1)
	for _, hash := range locator {
		header, err := m.client.GetBlockHeaderVerbose(&hash)
		if err != nil {
			// Unknown to the peer; try an older locator entry.
			continue
		}
		if header.Confirmations < 0 {
			// On a side branch of the peer's chain.
			continue
		}
		forkHeight = int64(header.Height)
		break
	}
	if forkHeight < 0 {
		return nil, errors.New("no locator hash known to the peer")
	}

	count, err := m.client.GetBlockCount()
	if err != nil {
		return nil, fmt.Errorf("get block count: %w", err)
	}
	end := count
	if end > forkHeight+m.batchLimit {
		end = forkHeight + m.batchLimit
	}
	if end <= forkHeight {
		return nil, nil
	}

	blocks := make([]*model.Block, end-forkHeight)
	indexes := make([]int, len(blocks))
	for i := range indexes {
		indexes[i] = i
	}

	err = workerpool.Process(ctx, m.workers, indexes, func(_ context.Context, i int) error {
		height := forkHeight + 1 + int64(i)
		hash, err := m.client.GetBlockHash(height)
		if err != nil {
			return fmt.Errorf("get block hash at %d: %w", height, err)
		}
		msg, err := m.client.GetBlock(hash)
		if err != nil {
			return fmt.Errorf("get block %s: %w", hash, err)
		}
		blocks[i] = model.NewBlock(msg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (m *Monitor) publish(ctx context.Context, ev events.Event) {
	if err := m.bus.Process(ctx, ev); err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Warn("publish event failed",
			zap.String("type", string(ev.Type)), zap.Error(err))
	}
}

func (m *Monitor) publishStop() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.publish(ctx, events.Event{Type: events.TypeStop})
}
