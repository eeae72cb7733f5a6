package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yangcoin/bitcore-node/internal/chain"
	"github.com/yangcoin/bitcore-node/internal/model"
	"github.com/yangcoin/bitcore-node/pkg/safe"
	"go.uber.org/zap"
)

// BlockService indexes confirmed blocks and owns chain-state persistence.
// Confirming a block chains into the transaction and address services;
// unconfirming rolls them back in reverse order before removing the block
// row itself.
type BlockService struct {
	repo         Repository
	transactions Indexer
	addresses    Indexer
	network      model.Network
	logger       *zap.Logger
}

// NewBlockService builds a BlockService with its chained indexers.
func NewBlockService(
	repo Repository,
	transactions Indexer,
	addresses Indexer,
	network model.Network,
	logger *zap.Logger,
) (*BlockService, error) {
	if repo == nil {
		return nil, errors.New("block service repository is required")
	}
	if transactions == nil || addresses == nil {
		return nil, errors.New("block service chained indexers are required")
	}

	return &BlockService{
		repo:         repo,
		transactions: transactions,
		addresses:    addresses,
		network:      network,
		logger:       logger.Named("blockService").With(zap.String("network", string(network))),
	}, nil
}

// Confirm indexes one newly canonical block.
func (s *BlockService) Confirm(ctx context.Context, b *model.Block) error {
	header := b.Msg.Header
	version, err := safe.Uint32(header.Version)
	if err != nil {
		return fmt.Errorf("confirm block %s: version: %w", b.Hash, err)
	}
	size, err := safe.Uint32(b.Msg.SerializeSize())
	if err != nil {
		return fmt.Errorf("confirm block %s: size: %w", b.Hash, err)
	}

	row := model.BlockRow{
		Network:    s.network,
		Height:     b.Height,
		Hash:       b.Hash.String(),
		PrevHash:   b.PrevHash.String(),
		Timestamp:  header.Timestamp.UTC(),
		Version:    version,
		MerkleRoot: header.MerkleRoot.String(),
		Bits:       header.Bits,
		Nonce:      header.Nonce,
		Size:       size,
		TXCount:    uint32(len(b.Msg.Transactions)),
	}
	if err := s.repo.InsertBlock(ctx, row); err != nil {
		return fmt.Errorf("confirm block %s: %w", b.Hash, err)
	}

	if err := s.transactions.Confirm(ctx, b); err != nil {
		return err
	}
	if err := s.addresses.Confirm(ctx, b); err != nil {
		return err
	}

	s.logger.Debug("block confirmed",
		zap.Stringer("hash", b.Hash), zap.Uint64("height", b.Height))
	return nil
}

// Unconfirm rolls back one abandoned block, dependents first.
func (s *BlockService) Unconfirm(ctx context.Context, b *model.Block) error {
	if err := s.addresses.Unconfirm(ctx, b); err != nil {
		return err
	}
	if err := s.transactions.Unconfirm(ctx, b); err != nil {
		return err
	}
	if err := s.repo.DeleteBlock(ctx, s.network, b.Hash.String()); err != nil {
		return fmt.Errorf("unconfirm block %s: %w", b.Hash, err)
	}

	s.logger.Info("block unconfirmed",
		zap.Stringer("hash", b.Hash), zap.Uint64("height", b.Height))
	return nil
}

// GetBlockchain loads the persisted chain-state snapshot; nil when none exists.
func (s *BlockService) GetBlockchain(ctx context.Context) (*chain.Snapshot, error) {
	raw, err := s.repo.LoadChainState(ctx, s.network)
	if err != nil {
		return nil, fmt.Errorf("load chain state: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var snapshot chain.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("decode chain state: %w", err)
	}
	return &snapshot, nil
}

// SaveBlockchain persists the chain-state snapshot.
func (s *BlockService) SaveBlockchain(ctx context.Context, snapshot *chain.Snapshot) error {
	if snapshot == nil {
		return errors.New("nil chain state snapshot")
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode chain state: %w", err)
	}
	if err := s.repo.SaveChainState(ctx, s.network, raw); err != nil {
		return fmt.Errorf("save chain state: %w", err)
	}

	s.logger.Info("chain state persisted", zap.Int("blocks", len(snapshot.Blocks)))
	return nil
}
