// Package metrics defines Prometheus instrumentation for the node, the
// network monitor and the ClickHouse repository.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/yangcoin/bitcore-node/internal/model"
)

var (
	nodeBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bitcore_node",
		Subsystem: "sync",
		Name:      "blocks_total",
		Help:      "Count of block arrivals handled by the sync node.",
	}, []string{"network", "status"})

	nodeBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bitcore_node",
		Subsystem: "sync",
		Name:      "block_duration_seconds",
		Help:      "Duration of handling one block arrival end to end.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	nodeReorgTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bitcore_node",
		Subsystem: "sync",
		Name:      "reorg_total",
		Help:      "Count of chain reorganizations applied.",
	}, []string{"network"})

	nodeReorgDepth = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bitcore_node",
		Subsystem: "sync",
		Name:      "reorg_depth",
		Help:      "Number of blocks unconfirmed per reorganization.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	}, []string{"network"})

	nodeReorgAttached = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bitcore_node",
		Subsystem: "sync",
		Name:      "reorg_attached_blocks",
		Help:      "Number of blocks confirmed per reorganization.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	}, []string{"network"})

	nodeTipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bitcore_node",
		Subsystem: "sync",
		Name:      "tip_height",
		Help:      "Height of the current canonical tip.",
	}, []string{"network"})

	nodeVelocity = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bitcore_node",
		Subsystem: "sync",
		Name:      "velocity_blocks_per_second",
		Help:      "Ingestion velocity over the last stats interval.",
	}, []string{"network"})
)

// SyncNode tracks metrics for the sync node pipeline.
type SyncNode struct {
	network model.Network
}

// NewSyncNode constructs a SyncNode metrics recorder.
func NewSyncNode(network model.Network) *SyncNode {
	if network == "" {
		network = "unknown"
	}
	return &SyncNode{network: network}
}

// ObserveBlock records the outcome and duration of one block arrival.
func (m SyncNode) ObserveBlock(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	nodeBlocksTotal.WithLabelValues(string(m.network), status).Inc()
	nodeBlockDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveReorg records an applied reorganization and its depth.
func (m SyncNode) ObserveReorg(unconfirmed, confirmed int) {
	nodeReorgTotal.WithLabelValues(string(m.network)).Inc()
	nodeReorgDepth.WithLabelValues(string(m.network)).Observe(float64(unconfirmed))
	nodeReorgAttached.WithLabelValues(string(m.network)).Observe(float64(confirmed))
}

// SetTipHeight publishes the canonical tip height.
func (m SyncNode) SetTipHeight(height uint64) {
	nodeTipHeight.WithLabelValues(string(m.network)).Set(float64(height))
}

// SetVelocity publishes the blocks-per-second ingestion velocity.
func (m SyncNode) SetVelocity(v float64) {
	nodeVelocity.WithLabelValues(string(m.network)).Set(v)
}
