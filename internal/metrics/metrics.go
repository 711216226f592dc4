// Package metrics defines the custom Prometheus metrics for the extractor.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "upsextract"

// ExtractsTotal counts extraction runs by outcome.
// Label:
//   - outcome: "ok", "empty", "not_a_document", "decode_failure"
var ExtractsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "extracts_total",
		Help:      "Total number of extraction runs, by outcome.",
	},
	[]string{"outcome"},
)

// RecordsTotal counts emitted shipment records by status.
// Label:
//   - status: "Active" or "Void"
var RecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_total",
		Help:      "Total number of shipment records extracted, by status.",
	},
	[]string{"status"},
)

// ExtractDuration measures a full run: render, extract, persist.
var ExtractDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "extract_duration_seconds",
		Help:      "Duration of one document extraction end-to-end.",
		Buckets:   prometheus.DefBuckets,
	},
)
