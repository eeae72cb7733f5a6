// Package chain maintains the canonical chain state: every known block's
// height and cumulative work, the current tip, and the height index along the
// canonical branch. It is the single source of truth for computing the
// confirm/unconfirm delta caused by inserting one new block.
//
// A BlockChain is not safe for concurrent use; the sync node mutates it from
// its single event-handling path only.
package chain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/yangcoin/bitcore-node/internal/model"
)

// ErrUnknownParent is returned when a block is proposed before its parent is
// connected. Callers must check HasData on the parent first.
var ErrUnknownParent = errors.New("parent block is not connected")

// Delta describes the effect of one proposed block on the canonical chain.
// Unconfirmed lists abandoned blocks from the old tip down to just above the
// fork point (highest height first); Confirmed lists newly canonical blocks
// from just above the fork point up to the new tip (lowest height first).
type Delta struct {
	Confirmed   []chainhash.Hash
	Unconfirmed []chainhash.Hash
}

// BlockChain tracks all known connected blocks and the canonical branch.
type BlockChain struct {
	heights map[chainhash.Hash]uint64
	work    map[chainhash.Hash]*big.Int
	parents map[chainhash.Hash]chainhash.Hash

	// hashByHeight is defined only along the path from genesis to tip.
	hashByHeight map[uint64]chainhash.Hash

	tip chainhash.Hash
}

// New returns an empty BlockChain. The first proposed block becomes genesis
// at height 0.
func New() *BlockChain {
	return &BlockChain{
		heights:      make(map[chainhash.Hash]uint64),
		work:         make(map[chainhash.Hash]*big.Int),
		parents:      make(map[chainhash.Hash]chainhash.Hash),
		hashByHeight: make(map[uint64]chainhash.Hash),
	}
}

// HasData reports whether the hash is a known, connected block.
func (c *BlockChain) HasData(hash chainhash.Hash) bool {
	_, ok := c.heights[hash]
	return ok
}

// Tip returns the current tip hash; ok is false before genesis is proposed.
func (c *BlockChain) Tip() (chainhash.Hash, bool) {
	if c.empty() {
		return chainhash.Hash{}, false
	}
	return c.tip, true
}

// TipHeight returns the height of the current tip, or 0 on an empty chain.
func (c *BlockChain) TipHeight() uint64 {
	return c.heights[c.tip]
}

// Height returns the height assigned to a connected block.
func (c *BlockChain) Height(hash chainhash.Hash) (uint64, bool) {
	h, ok := c.heights[hash]
	return h, ok
}

// ProposeNewBlock inserts one block and computes its effect on the canonical
// chain. The block's parent must already be connected, except for the very
// first block which becomes genesis. The block is annotated with the height
// and cumulative work the chain assigned.
//
// A block extending the tip or winning a reorganization yields a non-empty
// Delta; a side-branch block with less or equal cumulative work is recorded
// with an empty Delta and the existing tip is kept (first seen wins ties).
func (c *BlockChain) ProposeNewBlock(b *model.Block) (Delta, error) {
	if c.empty() {
		c.insert(b, 0, new(big.Int).Set(b.Work))
		c.hashByHeight[0] = b.Hash
		c.tip = b.Hash
		return Delta{Confirmed: []chainhash.Hash{b.Hash}}, nil
	}

	if c.HasData(b.Hash) {
		// Already connected; nothing changes.
		return Delta{}, nil
	}

	parentHeight, ok := c.heights[b.PrevHash]
	if !ok {
		return Delta{}, fmt.Errorf("propose %s: %w", b.Hash, ErrUnknownParent)
	}

	cumWork := new(big.Int).Add(c.work[b.PrevHash], b.Work)
	c.insert(b, parentHeight+1, cumWork)

	switch {
	case b.PrevHash == c.tip:
		c.hashByHeight[b.Height] = b.Hash
		c.tip = b.Hash
		return Delta{Confirmed: []chainhash.Hash{b.Hash}}, nil

	case cumWork.Cmp(c.work[c.tip]) > 0:
		return c.reorganize(b.Hash), nil

	default:
		return Delta{}, nil
	}
}

func (c *BlockChain) insert(b *model.Block, height uint64, cumWork *big.Int) {
	c.heights[b.Hash] = height
	c.work[b.Hash] = cumWork
	c.parents[b.Hash] = b.PrevHash
	b.Height = height
	b.CumWork = cumWork
}

// reorganize switches the canonical branch to the one ending in newTip. The
// fork point is found by walking parent pointers from newTip until a block on
// the canonical branch is reached; genesis is always canonical, so the walk
// terminates.
func (c *BlockChain) reorganize(newTip chainhash.Hash) Delta {
	var attach []chainhash.Hash
	cursor := newTip
	for !c.isCanonical(cursor) {
		attach = append(attach, cursor)
		cursor = c.parents[cursor]
	}
	ancestorHeight := c.heights[cursor]

	// Detach the old branch highest first, so dependents roll back before
	// their dependencies.
	var detach []chainhash.Hash
	for h := c.heights[c.tip]; h > ancestorHeight; h-- {
		detach = append(detach, c.hashByHeight[h])
		delete(c.hashByHeight, h)
	}

	// Attach the new branch lowest first, so each block's parent is
	// confirmed before it.
	for i, j := 0, len(attach)-1; i < j; i, j = i+1, j-1 {
		attach[i], attach[j] = attach[j], attach[i]
	}
	for _, hash := range attach {
		c.hashByHeight[c.heights[hash]] = hash
	}

	c.tip = newTip
	return Delta{Confirmed: attach, Unconfirmed: detach}
}

func (c *BlockChain) isCanonical(hash chainhash.Hash) bool {
	height, ok := c.heights[hash]
	if !ok {
		return false
	}
	canonical, ok := c.hashByHeight[height]
	return ok && canonical == hash
}

func (c *BlockChain) empty() bool {
	return len(c.heights) == 0
}
