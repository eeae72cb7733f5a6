package netmon

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/ratelimit"
)

// ObservedClient wraps rpcclient.Client with metrics and a client-side rate
// limit so locator catch-up bursts do not overwhelm the trusted node.
type ObservedClient struct {
	client  *rpcclient.Client
	metrics RPCMetrics
	limiter ratelimit.Limiter
}

func NewObservedClient(client *rpcclient.Client, metrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:  client,
		metrics: metrics,
		limiter: ratelimit.New(rpcRatePerSecond),
	}
}

func (c *ObservedClient) GetBlockCount() (count int64, err error) {
	started := c.take()
	defer func() {
		c.metrics.ObserveRPC("get_block_count", err, started)
	}()
	return c.client.GetBlockCount()
}

func (c *ObservedClient) GetBestBlockHash() (hash *chainhash.Hash, err error) {
	started := c.take()
	defer func() {
		c.metrics.ObserveRPC("get_best_block_hash", err, started)
	}()
	return c.client.GetBestBlockHash()
}

func (c *ObservedClient) GetBlockHash(height int64) (hash *chainhash.Hash, err error) {
	started := c.take()
	defer func() {
		c.metrics.ObserveRPC("get_block_hash", err, started)
	}()
	return c.client.GetBlockHash(height)
}

func (c *ObservedClient) GetBlock(hash *chainhash.Hash) (block *wire.MsgBlock, err error) {
	started := c.take()
	defer func() {
		c.metrics.ObserveRPC("get_block", err, started)
	}()
	return c.client.GetBlock(hash)
}

func (c *ObservedClient) GetBlockHeaderVerbose(hash *chainhash.Hash) (res *btcjson.GetBlockHeaderVerboseResult, err error) {
	started := c.take()
	defer func() {
		c.metrics.ObserveRPC("get_block_header", err, started)
	}()
	return c.client.GetBlockHeaderVerbose(hash)
}

func (c *ObservedClient) take() time.Time {
	c.limiter.Take()
	return time.Now()
}
