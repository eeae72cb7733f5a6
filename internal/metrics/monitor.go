package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/yangcoin/bitcore-node/internal/model"
)

var (
	monitorRPCTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bitcore_node",
		Subsystem: "monitor",
		Name:      "rpc_total",
		Help:      "Count of RPC calls made to the trusted node.",
	}, []string{"network", "operation", "status"})

	monitorRPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bitcore_node",
		Subsystem: "monitor",
		Name:      "rpc_duration_seconds",
		Help:      "Duration of RPC calls to the trusted node.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "operation", "status"})

	monitorRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bitcore_node",
		Subsystem: "monitor",
		Name:      "block_requests_total",
		Help:      "Count of locator-based block requests resolved.",
	}, []string{"network", "status"})

	monitorRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bitcore_node",
		Subsystem: "monitor",
		Name:      "block_request_duration_seconds",
		Help:      "Duration of resolving one locator-based block request.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
	}, []string{"network", "status"})

	monitorBlocksDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bitcore_node",
		Subsystem: "monitor",
		Name:      "blocks_delivered_total",
		Help:      "Count of blocks published to the event bus.",
	}, []string{"network"})
)

// Monitor tracks metrics for the network monitor.
type Monitor struct {
	network model.Network
}

// NewMonitor constructs a Monitor metrics recorder.
func NewMonitor(network model.Network) *Monitor {
	if network == "" {
		network = "unknown"
	}
	return &Monitor{network: network}
}

// ObserveRPC records one RPC call outcome and duration.
func (m Monitor) ObserveRPC(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	monitorRPCTotal.WithLabelValues(string(m.network), operation, status).Inc()
	monitorRPCDuration.WithLabelValues(string(m.network), operation, status).
		Observe(time.Since(started).Seconds())
}

// ObserveRequest records one resolved locator request.
func (m Monitor) ObserveRequest(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	monitorRequestsTotal.WithLabelValues(string(m.network), status).Inc()
	monitorRequestDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveDelivered counts blocks published to the bus.
func (m Monitor) ObserveDelivered(n int) {
	monitorBlocksDelivered.WithLabelValues(string(m.network)).Add(float64(n))
}
