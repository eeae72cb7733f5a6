// Package node implements the sync orchestrator: it wires the network
// monitor, chain state and indexing services into one pipeline, owns the
// block cache and inventory, and sequences confirm/unconfirm calls so the
// downstream indexes never observe a partially applied reorganization.
package node

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/yangcoin/bitcore-node/internal/chain"
	"github.com/yangcoin/bitcore-node/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// NetworkMonitor is the out-of-process collaborator delivering blocks.
	NetworkMonitor interface {
		Start(ctx context.Context) error
		RequestBlocks(ctx context.Context, locator []chainhash.Hash) error
		Abort(reason error)
	}

	// BlockService persists the chain state and applies/rolls back blocks.
	// Transaction and address indexing is chained behind it.
	BlockService interface {
		GetBlockchain(ctx context.Context) (*chain.Snapshot, error)
		SaveBlockchain(ctx context.Context, snapshot *chain.Snapshot) error
		Confirm(ctx context.Context, b *model.Block) error
		Unconfirm(ctx context.Context, b *model.Block) error
	}

	Metrics interface {
		ObserveBlock(err error, started time.Time)
		ObserveReorg(unconfirmed, confirmed int)
		SetTipHeight(height uint64)
		SetVelocity(v float64)
	}
)
