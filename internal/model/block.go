// Package model defines domain models shared by the chain state, the sync
// node and the indexing services.
package model

import (
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Network identifies the chain a node is following.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet3"
	Regtest Network = "regtest"
)

// Block is a block received from the network. Hash, PrevHash, Work and Msg
// are fixed at construction; Height and CumWork are assigned by the chain
// state once the block connects to a known parent.
type Block struct {
	Hash     chainhash.Hash
	PrevHash chainhash.Hash

	// Work is this block's own proof-of-work contribution, derived from the
	// header's compact difficulty bits.
	Work *big.Int

	// Height and CumWork are zero until the block is proposed.
	Height  uint64
	CumWork *big.Int

	Msg *wire.MsgBlock

	util *btcutil.Block
}

// NewBlock wraps a parsed wire block.
func NewBlock(msg *wire.MsgBlock) *Block {
	return &Block{
		Hash:     msg.BlockHash(),
		PrevHash: msg.Header.PrevBlock,
		Work:     blockchain.CalcWork(msg.Header.Bits),
		Msg:      msg,
		util:     btcutil.NewBlock(msg),
	}
}

// Transactions returns the block's transactions with lazily cached hashes.
// Each indexing service hashes every transaction; the cache makes the second
// pass free.
func (b *Block) Transactions() []*btcutil.Tx {
	if b.util == nil {
		b.util = btcutil.NewBlock(b.Msg)
	}
	return b.util.Transactions()
}
