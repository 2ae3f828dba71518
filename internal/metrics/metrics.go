// Package metrics exposes ledger activity to Prometheus.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shop_ledger"

// LedgerMetrics holds the collectors updated by the services.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	registry *prometheus.Registry

	settlementsClosed    *prometheus.CounterVec
	settlementDuration   prometheus.Histogram
	transactionsRecorded *prometheus.CounterVec
	settlementPayments   prometheus.Counter
}

// New creates the collectors on a dedicated registry, together with the Go
// runtime and process collectors.
func New() *LedgerMetrics {
	registry := prometheus.NewRegistry()
	m := &LedgerMetrics{
		registry: registry,
		settlementsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_closed_total",
			Help:      "Settlements closed, by outcome.",
		}, []string{"outcome"}),
		settlementDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_close_duration_seconds",
			Help:      "Time taken to close a settlement, including persistence.",
			Buckets:   prometheus.DefBuckets,
		}),
		transactionsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "investment_transactions_recorded_total",
			Help:      "Investment transactions recorded, by kind.",
		}, []string{"kind"}),
		settlementPayments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_payments_recorded_total",
			Help:      "Payments recorded against settlement entries.",
		}),
	}

	registry.MustRegister(
		m.settlementsClosed,
		m.settlementDuration,
		m.transactionsRecorded,
		m.settlementPayments,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *LedgerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSettlementClose records one close attempt and its latency.
func (m *LedgerMetrics) ObserveSettlementClose(started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.settlementsClosed.WithLabelValues(outcome).Inc()
	m.settlementDuration.Observe(time.Since(started).Seconds())
}

// IncTransactionRecorded counts a recorded transaction. Phases are free text,
// so only contribution and withdrawal are distinguished.
func (m *LedgerMetrics) IncTransactionRecorded(phase string) {
	if m == nil {
		return
	}
	kind := "contribution"
	if strings.EqualFold(strings.TrimSpace(phase), "withdrawal") {
		kind = "withdrawal"
	}
	m.transactionsRecorded.WithLabelValues(kind).Inc()
}

// IncSettlementPayment counts a payment against a settlement entry.
func (m *LedgerMetrics) IncSettlementPayment() {
	if m == nil {
		return
	}
	m.settlementPayments.Inc()
}
