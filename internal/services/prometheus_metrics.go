package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names accepted by PrometheusMetrics
const (
	MetricTransactionsRecorded = "transactions_recorded"
	MetricBudgetAlerts         = "budget_alerts"
	MetricCategoriesChanged    = "categories_changed"
	MetricStatusComputation    = "budget_status_computation"
	MetricBudgetPercentUsed    = "budget_percent_used"
)

type PrometheusMetrics struct {
	transactionsRecorded *prometheus.CounterVec
	transactionAmount    prometheus.Histogram
	budgetAlerts         *prometheus.CounterVec
	categoriesChanged    *prometheus.CounterVec
	computationDuration  prometheus.Histogram
	percentUsed          *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the budget metrics with reg
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		transactionsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_recorded_total",
				Help: "Total number of transactions recorded",
			},
			[]string{"type", "categorised"},
		),
		transactionAmount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transaction_amount",
				Help:    "Transaction amount in currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 7),
			},
		),
		budgetAlerts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_alerts_total",
				Help: "Debits that left a category at a critical or exceeded alert level",
			},
			[]string{"level"},
		),
		categoriesChanged: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "categories_changed_total",
				Help: "Category changes by operation",
			},
			[]string{"operation"},
		),
		computationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "budget_status_computation_duration_milliseconds",
				Help:    "Time to compute the budget statuses of a month in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		percentUsed: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "budget_percent_used",
				Help: "Last computed percent of budget used per category",
			},
			[]string{"category"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricTransactionsRecorded:
		m.transactionsRecorded.WithLabelValues(tags["type"], tags["categorised"]).Inc()
	case MetricBudgetAlerts:
		if level := tags["level"]; level != "" {
			m.budgetAlerts.WithLabelValues(level).Inc()
		}
	case MetricCategoriesChanged:
		if operation := tags["operation"]; operation != "" {
			m.categoriesChanged.WithLabelValues(operation).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricStatusComputation:
		m.computationDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricTransactionsRecorded:
		m.transactionAmount.Observe(value)
	case MetricBudgetPercentUsed:
		if category := tags["category"]; category != "" {
			m.percentUsed.WithLabelValues(category).Set(value)
		}
	}
}
