// Package metrics exposes Prometheus collectors for the billing API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/models"
)

const namespace = "billing"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	paymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Payments applied to bills by method.",
	}, []string{"method"})

	paymentAmount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_amount_total",
		Help:      "Sum of all payment amounts applied.",
	})

	billsByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "bills",
		Help:      "Bills by status at the last refresh.",
	}, []string{"status"})

	outstandingAmount = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "outstanding_amount",
		Help:      "Outstanding amount across unpaid bills at the last refresh.",
	})

	jobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_runs_total",
		Help:      "Background job runs by job name and result.",
	}, []string{"job", "result"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// ObservePayment records a payment applied to a bill.
func ObservePayment(method string, amount decimal.Decimal) {
	paymentsRecorded.WithLabelValues(method).Inc()
	paymentAmount.Add(amount.InexactFloat64())
}

// SetBillStats replaces the bill gauges with a fresh snapshot.
func SetBillStats(stats *models.BillStats) {
	for status, count := range stats.CountByStatus {
		billsByStatus.WithLabelValues(status).Set(float64(count))
	}
	outstandingAmount.Set(stats.TotalOutstanding.InexactFloat64())
}

// ObserveJob records the outcome of a background job run.
func ObserveJob(name string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	jobRuns.WithLabelValues(name, result).Inc()
}
