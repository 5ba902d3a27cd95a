package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePayment(t *testing.T) {
	before := testutil.ToFloat64(paymentsRecorded.WithLabelValues(models.PaymentMethodCheque))

	ObservePayment(models.PaymentMethodCheque, decimal.RequireFromString("12.50"))

	assert.Equal(t, before+1, testutil.ToFloat64(paymentsRecorded.WithLabelValues(models.PaymentMethodCheque)))
}

func TestSetBillStats(t *testing.T) {
	SetBillStats(&models.BillStats{
		CountByStatus:    map[string]int64{models.BillStatusPending: 3, models.BillStatusPaid: 1},
		TotalOutstanding: decimal.NewFromInt(4500),
	})

	assert.Equal(t, 3.0, testutil.ToFloat64(billsByStatus.WithLabelValues(models.BillStatusPending)))
	assert.Equal(t, 4500.0, testutil.ToFloat64(outstandingAmount))
}

func TestObserveJob(t *testing.T) {
	ObserveJob("refresh", nil)
	ObserveJob("refresh", errors.New("db down"))

	assert.GreaterOrEqual(t, testutil.ToFloat64(jobRuns.WithLabelValues("refresh", "success")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(jobRuns.WithLabelValues("refresh", "failure")), 1.0)
}

func TestHandler(t *testing.T) {
	ObserveRequest("GET", "/api/v1/bills", "200", 0.01)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "billing_http_requests_total"))
}
