package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/yangcoin/bitcore-node/internal/model"
)

// DeleteAddressRows removes all address index rows of an unconfirmed block.
func (r *Repository) DeleteAddressRows(ctx context.Context, network model.Network, blockHash string) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("delete_address_rows", network, err, start)
	}()

	const query = `DELETE FROM address_index WHERE network = ? AND block_hash = ?`
	if err = r.conn.Exec(ctx, query, string(network), blockHash); err != nil {
		return fmt.Errorf("delete address rows of %s: %w", blockHash, err)
	}
	return nil
}
