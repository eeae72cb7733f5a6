package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yangcoin/bitcore-node/internal/model"
)

// LoadChainState returns the latest persisted chain-state snapshot, or nil
// when none has been saved yet.
func (r *Repository) LoadChainState(ctx context.Context, network model.Network) ([]byte, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("load_chain_state", network, err, start)
	}()

	const query = `
SELECT state
FROM chain_state
WHERE network = ?
ORDER BY updated_at DESC
LIMIT 1`

	var state string
	err = r.conn.QueryRow(ctx, query, string(network)).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load chain state: %w", err)
	}
	return []byte(state), nil
}
