package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/yangcoin/bitcore-node/internal/model"
)

// DeleteTransactions removes all transaction rows of an unconfirmed block.
func (r *Repository) DeleteTransactions(ctx context.Context, network model.Network, blockHash string) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("delete_transactions", network, err, start)
	}()

	const query = `DELETE FROM transactions WHERE network = ? AND block_hash = ?`
	if err = r.conn.Exec(ctx, query, string(network), blockHash); err != nil {
		return fmt.Errorf("delete transactions of %s: %w", blockHash, err)
	}
	return nil
}
