package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/yangcoin/bitcore-node/internal/model"
)

// InsertAddressRows stores address index rows of a confirmed block.
func (r *Repository) InsertAddressRows(ctx context.Context, rows []model.AddressRow) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_address_rows", firstNetwork(rows), err, start)
	}()

	if len(rows) == 0 {
		return nil
	}

	const query = `
INSERT INTO address_index (
	network,
	address,
	txid,
	vout,
	value,
	block_hash,
	block_height
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare address batch: %w", err)
	}

	for _, row := range rows {
		if err = batch.Append(
			string(row.Network),
			row.Address,
			row.TXID,
			row.Vout,
			row.Value,
			row.BlockHash,
			row.BlockHeight,
		); err != nil {
			return fmt.Errorf("append address row: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert address rows: %w", err)
	}
	return nil
}
