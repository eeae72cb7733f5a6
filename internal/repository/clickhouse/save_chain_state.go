package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/yangcoin/bitcore-node/internal/model"
)

// SaveChainState persists the serialized chain-state snapshot. The table is a
// ReplacingMergeTree keyed by network, so the latest updated_at wins.
func (r *Repository) SaveChainState(ctx context.Context, network model.Network, state []byte) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("save_chain_state", network, err, start)
	}()

	const query = `INSERT INTO chain_state (network, state, updated_at) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare chain state batch: %w", err)
	}
	if err = batch.Append(string(network), string(state), time.Now().UTC()); err != nil {
		return fmt.Errorf("append chain state: %w", err)
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("save chain state: %w", err)
	}
	return nil
}
