package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/yangcoin/bitcore-node/internal/model"
	"github.com/yangcoin/bitcore-node/pkg/batcher"
	"github.com/yangcoin/bitcore-node/pkg/safe"
	"go.uber.org/zap"
)

// TransactionService indexes the transactions of confirmed blocks.
type TransactionService struct {
	repo    Repository
	network model.Network
	logger  *zap.Logger
}

// NewTransactionService builds a TransactionService.
func NewTransactionService(repo Repository, network model.Network, logger *zap.Logger) (*TransactionService, error) {
	if repo == nil {
		return nil, errors.New("transaction service repository is required")
	}
	return &TransactionService{
		repo:    repo,
		network: network,
		logger:  logger.Named("transactionService").With(zap.String("network", string(network))),
	}, nil
}

// Confirm inserts the block's transaction rows. Rows are flushed through a
// short-lived batcher; the call returns only once every row is persisted or
// a flush failed.
func (s *TransactionService) Confirm(ctx context.Context, b *model.Block) error {
	rows, err := s.buildRows(b)
	if err != nil {
		return fmt.Errorf("confirm transactions of %s: %w", b.Hash, err)
	}
	if len(rows) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		flushErr error
		mu       sync.Mutex
		wg       sync.WaitGroup
	)
	recordErr := func(e error) {
		mu.Lock()
		defer mu.Unlock()
		if flushErr == nil {
			flushErr = e
			cancel()
		}
	}

	bt := batcher.New[model.TransactionRow](
		s.logger.Named("txBatcher"),
		func(ctx context.Context, batch []model.TransactionRow) error {
			err := s.repo.InsertTransactions(ctx, batch)
			if err != nil {
				recordErr(err)
			}
			wg.Add(-len(batch))
			return err
		},
		txBatchCapacity,
		txBatchFlushInterval,
		txBatchRPS,
	)
	bt.Start(ctx)

	addErr := func() error {
		for _, row := range rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			wg.Add(1)
			if err := bt.Add(ctx, row); err != nil {
				wg.Done()
				return err
			}
		}
		return nil
	}()
	bt.Stop()
	if addErr != nil {
		return fmt.Errorf("confirm transactions of %s: %w", b.Hash, addErr)
	}

	wg.Wait()
	if flushErr != nil {
		return fmt.Errorf("confirm transactions of %s: %w", b.Hash, flushErr)
	}
	return nil
}

// Unconfirm removes all transaction rows of an abandoned block.
func (s *TransactionService) Unconfirm(ctx context.Context, b *model.Block) error {
	if err := s.repo.DeleteTransactions(ctx, s.network, b.Hash.String()); err != nil {
		return fmt.Errorf("unconfirm transactions of %s: %w", b.Hash, err)
	}
	return nil
}

func (s *TransactionService) buildRows(b *model.Block) ([]model.TransactionRow, error) {
	txs := b.Transactions()
	rows := make([]model.TransactionRow, 0, len(txs))
	for i, tx := range txs {
		msgTx := tx.MsgTx()
		var outputValue uint64
		for _, out := range msgTx.TxOut {
			value, err := safe.Uint64(out.Value)
			if err != nil {
				return nil, fmt.Errorf("transaction %s output value: %w", tx.Hash(), err)
			}
			outputValue += value
		}
		rows = append(rows, model.TransactionRow{
			Network:     s.network,
			TXID:        tx.Hash().String(),
			BlockHash:   b.Hash.String(),
			BlockHeight: b.Height,
			Index:       uint32(i),
			InputCount:  uint32(len(msgTx.TxIn)),
			OutputCount: uint32(len(msgTx.TxOut)),
			OutputValue: outputValue,
			Coinbase:    blockchain.IsCoinBaseTx(msgTx),
		})
	}
	return rows, nil
}
