package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QueueMetrics records stats queue processing as Prometheus series.
type QueueMetrics struct {
	items         *prometheus.CounterVec
	batchDuration prometheus.Histogram
	batchClaimed  prometheus.Histogram
	rejected      prometheus.Counter
}

func NewQueueMetrics(registerer prometheus.Registerer) (*QueueMetrics, error) {
	m := &QueueMetrics{
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hockey",
			Subsystem: "stats_queue",
			Name:      "items_total",
			Help:      "Processed stats queue items by outcome.",
		}, []string{"outcome"}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hockey",
			Subsystem: "stats_queue",
			Name:      "batch_duration_seconds",
			Help:      "Wall time of one stats queue batch.",
			Buckets:   prometheus.DefBuckets,
		}),
		batchClaimed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hockey",
			Subsystem: "stats_queue",
			Name:      "batch_claimed_items",
			Help:      "Items claimed per stats queue batch.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50},
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hockey",
			Subsystem: "stats_queue",
			Name:      "batches_rejected_total",
			Help:      "Batch requests rejected because another batch was running.",
		}),
	}

	if registerer == nil {
		return m, nil
	}
	for _, collector := range []prometheus.Collector{m.items, m.batchDuration, m.batchClaimed, m.rejected} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *QueueMetrics) ItemProcessed(outcome string) {
	m.items.WithLabelValues(outcome).Inc()
}

func (m *QueueMetrics) BatchFinished(claimed int, elapsed time.Duration) {
	m.batchClaimed.Observe(float64(claimed))
	m.batchDuration.Observe(elapsed.Seconds())
}

func (m *QueueMetrics) BatchRejected() {
	m.rejected.Inc()
}
