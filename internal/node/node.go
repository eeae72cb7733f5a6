package node

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/yangcoin/bitcore-node/internal/chain"
	"github.com/yangcoin/bitcore-node/internal/clock"
	"github.com/yangcoin/bitcore-node/internal/events"
	"github.com/yangcoin/bitcore-node/internal/model"
	"go.uber.org/zap"
)

// Node is the sync orchestrator. All state below is mutated only from the
// bus dispatch goroutine.
type Node struct {
	logger  *zap.Logger
	bus     *events.Bus
	monitor NetworkMonitor
	blocks  BlockService
	metrics Metrics
	genesis *model.Block

	chain *chain.BlockChain
	cache map[chainhash.Hash]*model.Block

	// inventory tracks identifiers known to exist in the network. It is
	// advisory: nothing triggers off completeness, the stats line only
	// reports its size.
	inventory map[chainhash.Hash]bool

	lastHeight uint64
	fatal      chan error
}

// New builds a Node. The genesis block is proposed as the very first block
// when no persisted chain state exists.
func New(
	bus *events.Bus,
	monitor NetworkMonitor,
	blocks BlockService,
	metrics Metrics,
	genesis *wire.MsgBlock,
	logger *zap.Logger,
) (*Node, error) {
	if bus == nil || monitor == nil || blocks == nil {
		return nil, errors.New("node requires bus, monitor and block service")
	}
	if metrics == nil {
		return nil, errors.New("node metrics is required")
	}
	if genesis == nil {
		return nil, errors.New("node genesis block is required")
	}

	return &Node{
		logger:    logger.Named("node"),
		bus:       bus,
		monitor:   monitor,
		blocks:    blocks,
		metrics:   metrics,
		genesis:   model.NewBlock(genesis),
		cache:     make(map[chainhash.Hash]*model.Block),
		inventory: make(map[chainhash.Hash]bool),
		fatal:     make(chan error, 1),
	}, nil
}

// Run starts synchronization and blocks until the context is canceled or a
// fatal service error occurs. Chain state is persisted on the way out.
func (n *Node) Run(ctx context.Context) error {
	if err := n.restoreChain(ctx); err != nil {
		return err
	}

	n.bus.Register(events.TypeBlock, n.handleBlock)
	n.bus.Register(events.TypeReady, n.handleReady)
	n.bus.Register(events.TypeStop, n.handleStop)
	n.bus.Register(events.TypeError, n.handleNetworkError)
	n.bus.Register(events.TypeDisconnect, n.handleDisconnect)
	n.bus.Register(events.TypeStats, n.handleStats)
	n.bus.OnAny(n.observeEvent)

	n.bus.Start(ctx)

	if _, ok := n.chain.Tip(); !ok {
		n.logger.Info("seeding genesis block", zap.Stringer("hash", n.genesis.Hash))
		if err := n.bus.Process(ctx, events.Event{Type: events.TypeBlock, Block: n.genesis}); err != nil {
			n.bus.Stop()
			return fmt.Errorf("seed genesis: %w", err)
		}
	}

	if err := n.monitor.Start(ctx); err != nil {
		n.bus.Stop()
		return fmt.Errorf("start network monitor: %w", err)
	}

	statsCtx, stopStats := context.WithCancel(ctx)
	defer stopStats()
	go clock.Every(statsCtx, statsInterval, func() {
		_ = n.bus.Process(statsCtx, events.Event{Type: events.TypeStats})
	})

	var reason error
	select {
	case <-ctx.Done():
		n.monitor.Abort(ctx.Err())
	case reason = <-n.fatal:
		n.logger.Error("fatal sync error, stopping node", zap.Error(reason))
		n.monitor.Abort(reason)
	}

	n.bus.Stop()
	n.saveChain()
	return reason
}

// handleBlock runs the per-block pipeline; any confirm/unconfirm failure is
// converted into a fatal stop condition.
func (n *Node) handleBlock(ctx context.Context, ev events.Event) error {
	if ev.Block == nil {
		return errors.New("block event without block payload")
	}

	started := time.Now()
	err := n.processBlock(ctx, ev.Block)
	n.metrics.ObserveBlock(err, started)
	if err != nil {
		n.fail(err)
	}
	return err
}

func (n *Node) processBlock(ctx context.Context, b *model.Block) error {
	n.cache[b.Hash] = b
	n.inventory[b.Hash] = true

	if _, ok := n.chain.Tip(); ok && !n.chain.HasData(b.PrevHash) {
		// Ancestry gap: do not propose, re-synchronize from the tip and let
		// the missing blocks arrive first.
		n.logger.Info("missing parent, requesting ancestry",
			zap.Stringer("hash", b.Hash), zap.Stringer("parent", b.PrevHash))
		return n.monitor.RequestBlocks(ctx, n.chain.BlockLocator())
	}

	delta, err := n.chain.ProposeNewBlock(b)
	if err != nil {
		return fmt.Errorf("propose block: %w", err)
	}

	if len(delta.Unconfirmed) > 0 {
		n.metrics.ObserveReorg(len(delta.Unconfirmed), len(delta.Confirmed))
		n.logger.Warn("chain reorganization",
			zap.Int("unconfirming", len(delta.Unconfirmed)),
			zap.Int("confirming", len(delta.Confirmed)),
			zap.Stringer("newTip", b.Hash))
	}

	// Roll back the abandoned branch completely before applying the new one.
	for _, hash := range delta.Unconfirmed {
		blk, ok := n.cache[hash]
		if !ok {
			return fmt.Errorf("unconfirm %s: block not in cache", hash)
		}
		if err := n.blocks.Unconfirm(ctx, blk); err != nil {
			return fmt.Errorf("unconfirm %s: %w", hash, err)
		}
	}
	for _, hash := range delta.Confirmed {
		blk, ok := n.cache[hash]
		if !ok {
			return fmt.Errorf("confirm %s: block not in cache", hash)
		}
		if err := n.blocks.Confirm(ctx, blk); err != nil {
			return fmt.Errorf("confirm %s: %w", hash, err)
		}
	}

	n.pruneCache()
	return nil
}

func (n *Node) pruneCache() {
	tipHeight := n.chain.TipHeight()
	if tipHeight <= pruneDepth {
		return
	}
	for hash := range n.cache {
		height, ok := n.chain.Height(hash)
		if !ok {
			continue
		}
		// A reorg to a shorter heavier branch leaves the detached blocks
		// above the tip; they must stay cached for a reorg back.
		if height > tipHeight {
			continue
		}
		if tipHeight-height > pruneDepth {
			delete(n.cache, hash)
		}
	}
}

func (n *Node) handleReady(ctx context.Context, _ events.Event) error {
	locator := n.chain.BlockLocator()
	if len(locator) == 0 {
		return nil
	}
	n.logger.Info("network ready, requesting blocks from tip",
		zap.Uint64("height", n.chain.TipHeight()))
	return n.monitor.RequestBlocks(ctx, locator)
}

func (n *Node) handleStop(context.Context, events.Event) error {
	n.saveChain()
	return nil
}

func (n *Node) handleNetworkError(_ context.Context, ev events.Event) error {
	// Not fatal: synchronization stalls until the monitor recovers.
	n.logger.Warn("network error", zap.Error(ev.Err))
	return nil
}

func (n *Node) handleDisconnect(context.Context, events.Event) error {
	n.logger.Warn("network disconnected")
	return nil
}

func (n *Node) handleStats(context.Context, events.Event) error {
	tip, ok := n.chain.Tip()
	if !ok {
		return nil
	}

	height := n.chain.TipHeight()
	// The tip height can drop between ticks after a reorg, so the difference
	// must be computed signed.
	velocity := (float64(height) - float64(n.lastHeight)) * 1000 / float64(statsInterval.Milliseconds())
	n.lastHeight = height

	n.metrics.SetTipHeight(height)
	n.metrics.SetVelocity(velocity)
	n.logger.Info("sync status",
		zap.Stringer("tip", tip),
		zap.Uint64("height", height),
		zap.Float64("blocksPerSecond", velocity),
		zap.Int("cached", len(n.cache)),
		zap.Int("inventory", len(n.inventory)))
	return nil
}

// observeEvent is the wildcard observability hook.
func (n *Node) observeEvent(_ context.Context, ev events.Event) error {
	n.logger.Debug("event", zap.String("type", string(ev.Type)))
	return nil
}

func (n *Node) restoreChain(ctx context.Context) error {
	snapshot, err := n.blocks.GetBlockchain(ctx)
	if err != nil {
		return fmt.Errorf("load persisted chain state: %w", err)
	}
	if snapshot == nil {
		n.chain = chain.New()
		n.logger.Info("no persisted chain state, starting from genesis")
		return nil
	}

	c, err := chain.FromSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("restore chain state: %w", err)
	}
	n.chain = c
	n.lastHeight = c.TipHeight()
	n.logger.Info("chain state restored", zap.Uint64("height", c.TipHeight()))
	return nil
}

func (n *Node) saveChain() {
	if n.chain == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := n.blocks.SaveBlockchain(ctx, n.chain.Snapshot()); err != nil {
		n.logger.Error("persist chain state failed", zap.Error(err))
	}
}

func (n *Node) fail(err error) {
	select {
	case n.fatal <- err:
	default:
	}
}
