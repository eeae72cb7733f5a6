// Package netmon implements the network monitor: it follows a trusted node
// over RPC, publishes arriving blocks and lifecycle events on the event bus,
// and resolves locator-based block requests from the sync node.
package netmon

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RPCClient interface {
		GetBlockCount() (int64, error)
		GetBestBlockHash() (*chainhash.Hash, error)
		GetBlockHash(height int64) (*chainhash.Hash, error)
		GetBlock(hash *chainhash.Hash) (*wire.MsgBlock, error)
		GetBlockHeaderVerbose(hash *chainhash.Hash) (*btcjson.GetBlockHeaderVerboseResult, error)
	}

	Metrics interface {
		ObserveRequest(err error, started time.Time)
		ObserveDelivered(n int)
	}

	RPCMetrics interface {
		ObserveRPC(operation string, err error, started time.Time)
	}
)
