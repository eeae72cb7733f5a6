package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/yangcoin/bitcore-node/internal/model"
)

// InsertTransactions stores transaction rows of a confirmed block.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.TransactionRow) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", firstNetwork(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	const query = `
INSERT INTO transactions (
	network,
	txid,
	block_hash,
	block_height,
	idx,
	input_count,
	output_count,
	output_value,
	coinbase
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, tx := range txs {
		if err = batch.Append(
			string(tx.Network),
			tx.TXID,
			tx.BlockHash,
			tx.BlockHeight,
			tx.Index,
			tx.InputCount,
			tx.OutputCount,
			tx.OutputValue,
			tx.Coinbase,
		); err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func firstNetwork[T any](items []T) model.Network {
	if len(items) == 0 {
		return ""
	}

	switch v := any(items[0]).(type) {
	case model.BlockRow:
		return v.Network
	case model.TransactionRow:
		return v.Network
	case model.AddressRow:
		return v.Network
	default:
		return ""
	}
}
