/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors the engine updates on every
// observable transition. Wiring it in is optional (Config.Metrics may be
// nil); it is purely observational and never influences protocol
// behavior.
type Metrics struct {
	BatchesEmitted prometheus.Counter
	BatchSize      prometheus.Histogram
	BufferLength   prometheus.Gauge
	CurrentEpoch   prometheus.Gauge
}

// NewMetrics builds a Metrics set under the given namespace and, if reg
// is non-nil, registers every collector with it.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		BatchesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_emitted_total",
			Help:      "Total number of batches queued for NextOutput.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of transactions in each emitted batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		BufferLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "buffer_length",
			Help:      "Current number of transactions buffered and not yet delivered.",
		}),
		CurrentEpoch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_epoch",
			Help:      "Current epoch counter.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.BatchesEmitted, m.BatchSize, m.BufferLength, m.CurrentEpoch)
	}
	return m
}

func (m *Metrics) observeBatch(size int, epoch uint64) {
	if m == nil {
		return
	}
	m.BatchesEmitted.Inc()
	m.BatchSize.Observe(float64(size))
	m.CurrentEpoch.Set(float64(epoch))
}

func (m *Metrics) setBufferLength(n int) {
	if m == nil {
		return
	}
	m.BufferLength.Set(float64(n))
}
