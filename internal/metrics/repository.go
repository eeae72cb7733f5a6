package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/yangcoin/bitcore-node/internal/model"
)

var (
	clickhouseQueryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bitcore_node",
		Subsystem: "clickhouse",
		Name:      "query_total",
		Help:      "Count of ClickHouse operations.",
	}, []string{"network", "operation", "status"})

	clickhouseQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bitcore_node",
		Subsystem: "clickhouse",
		Name:      "query_duration_seconds",
		Help:      "Duration of ClickHouse operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "operation", "status"})
)

// ClickhouseRepository tracks metrics for the ClickHouse repository.
type ClickhouseRepository struct{}

// NewClickhouseRepository constructs a ClickhouseRepository metrics recorder.
func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

// Observe records one repository operation.
func (ClickhouseRepository) Observe(operation string, network model.Network, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	if network == "" {
		network = "unknown"
	}
	clickhouseQueryTotal.WithLabelValues(string(network), operation, status).Inc()
	clickhouseQueryDuration.WithLabelValues(string(network), operation, status).
		Observe(time.Since(started).Seconds())
}
