package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveSettlementClose(time.Now(), nil)
	m.ObserveSettlementClose(time.Now(), nil)
	m.ObserveSettlementClose(time.Now(), errors.New("boom"))
	m.IncTransactionRecorded("round 1")
	m.IncTransactionRecorded(" Withdrawal")
	m.IncSettlementPayment()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.settlementsClosed.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.settlementsClosed.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transactionsRecorded.WithLabelValues("contribution")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transactionsRecorded.WithLabelValues("withdrawal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.settlementPayments))
	assert.Equal(t, 1, testutil.CollectAndCount(m.settlementDuration))
}

func TestLedgerMetrics_NilIsNoOp(t *testing.T) {
	var m *LedgerMetrics
	assert.NotPanics(t, func() {
		m.ObserveSettlementClose(time.Now(), nil)
		m.IncTransactionRecorded("withdrawal")
		m.IncSettlementPayment()
	})
}

func TestLedgerMetrics_Handler(t *testing.T) {
	m := New()
	m.IncTransactionRecorded("initial")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `shop_ledger_investment_transactions_recorded_total{kind="contribution"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
