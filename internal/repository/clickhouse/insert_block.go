package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/yangcoin/bitcore-node/internal/model"
)

// InsertBlock stores one confirmed block row.
func (r *Repository) InsertBlock(ctx context.Context, block model.BlockRow) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_block", block.Network, err, start)
	}()

	const query = `
INSERT INTO blocks (
	network,
	height,
	hash,
	prev_hash,
	timestamp,
	version,
	merkleroot,
	bits,
	nonce,
	size,
	tx_count
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare block batch: %w", err)
	}

	if err = batch.Append(
		string(block.Network),
		block.Height,
		block.Hash,
		block.PrevHash,
		block.Timestamp,
		block.Version,
		block.MerkleRoot,
		block.Bits,
		block.Nonce,
		block.Size,
		block.TXCount,
	); err != nil {
		return fmt.Errorf("append block: %w", err)
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert block: %w", err)
	}
	return nil
}
