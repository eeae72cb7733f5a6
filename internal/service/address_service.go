package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/yangcoin/bitcore-node/internal/model"
	"github.com/yangcoin/bitcore-node/pkg/safe"
	"go.uber.org/zap"
)

// AddressService indexes which addresses received outputs in confirmed
// blocks. Outputs whose scripts decode to no address (OP_RETURN, non-standard)
// are skipped.
type AddressService struct {
	repo    Repository
	params  *chaincfg.Params
	network model.Network
	logger  *zap.Logger
}

// NewAddressService builds an AddressService for the given chain parameters.
func NewAddressService(repo Repository, params *chaincfg.Params, network model.Network, logger *zap.Logger) (*AddressService, error) {
	if repo == nil {
		return nil, errors.New("address service repository is required")
	}
	if params == nil {
		return nil, errors.New("address service chain params are required")
	}
	return &AddressService{
		repo:    repo,
		params:  params,
		network: network,
		logger:  logger.Named("addressService").With(zap.String("network", string(network))),
	}, nil
}

// Confirm inserts the block's address index rows.
func (s *AddressService) Confirm(ctx context.Context, b *model.Block) error {
	rows, err := s.buildRows(b)
	if err != nil {
		return fmt.Errorf("confirm addresses of %s: %w", b.Hash, err)
	}
	if err := s.repo.InsertAddressRows(ctx, rows); err != nil {
		return fmt.Errorf("confirm addresses of %s: %w", b.Hash, err)
	}
	return nil
}

// Unconfirm removes all address index rows of an abandoned block.
func (s *AddressService) Unconfirm(ctx context.Context, b *model.Block) error {
	if err := s.repo.DeleteAddressRows(ctx, s.network, b.Hash.String()); err != nil {
		return fmt.Errorf("unconfirm addresses of %s: %w", b.Hash, err)
	}
	return nil
}

func (s *AddressService) buildRows(b *model.Block) ([]model.AddressRow, error) {
	var rows []model.AddressRow
	blockHash := b.Hash.String()
	for _, tx := range b.Transactions() {
		txid := tx.Hash().String()
		for vout, out := range tx.MsgTx().TxOut {
			_, addrs, _, err := txscript.ExtractPkScriptAddrs(out.PkScript, s.params)
			if err != nil || len(addrs) == 0 {
				continue
			}
			value, err := safe.Uint64(out.Value)
			if err != nil {
				return nil, fmt.Errorf("output %s:%d value: %w", txid, vout, err)
			}
			for _, addr := range addrs {
				rows = append(rows, model.AddressRow{
					Network:     s.network,
					Address:     addr.EncodeAddress(),
					TXID:        txid,
					Vout:        uint32(vout),
					Value:       value,
					BlockHash:   blockHash,
					BlockHeight: b.Height,
				})
			}
		}
	}
	return rows, nil
}
