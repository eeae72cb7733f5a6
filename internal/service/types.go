// Package service implements the block, transaction and address indexing
// services driven by the sync node's confirm/unconfirm protocol.
package service

import (
	"context"

	"github.com/yangcoin/bitcore-node/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Indexer applies or rolls back the effects of one canonical block.
	// Each call fully succeeds or fully fails.
	Indexer interface {
		Confirm(ctx context.Context, b *model.Block) error
		Unconfirm(ctx context.Context, b *model.Block) error
	}

	Repository interface {
		InsertBlock(ctx context.Context, block model.BlockRow) error
		InsertTransactions(ctx context.Context, txs []model.TransactionRow) error
		InsertAddressRows(ctx context.Context, rows []model.AddressRow) error
		DeleteBlock(ctx context.Context, network model.Network, blockHash string) error
		DeleteTransactions(ctx context.Context, network model.Network, blockHash string) error
		DeleteAddressRows(ctx context.Context, network model.Network, blockHash string) error
		SaveChainState(ctx context.Context, network model.Network, state []byte) error
		LoadChainState(ctx context.Context, network model.Network) ([]byte, error)
	}
)
