package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/yangcoin/bitcore-node/internal/model"
)

// DeleteBlock removes the block row of an unconfirmed block.
func (r *Repository) DeleteBlock(ctx context.Context, network model.Network, blockHash string) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("delete_block", network, err, start)
	}()

	const query = `DELETE FROM blocks WHERE network = ? AND hash = ?`
	if err = r.conn.Exec(ctx, query, string(network), blockHash); err != nil {
		return fmt.Errorf("delete block %s: %w", blockHash, err)
	}
	return nil
}
