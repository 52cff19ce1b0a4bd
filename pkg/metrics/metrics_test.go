package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/x", 200, time.Millisecond)
		m.ObserveDBCall("query", time.Millisecond, nil)
		m.IncBookingOutcome(BookingOutcomeSuccess)
		m.AddTimeslotsGenerated(3)
		m.AddTimeslotsRemoved(1)
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.IncBookingOutcome(BookingOutcomeSuccess)
	m.IncBookingOutcome(BookingOutcomeSuccess)
	m.IncBookingOutcome(BookingOutcomeConflict)
	m.AddTimeslotsGenerated(5)
	m.AddTimeslotsGenerated(0)
	m.AddTimeslotsRemoved(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingAttempts.WithLabelValues(BookingOutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingAttempts.WithLabelValues(BookingOutcomeConflict)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.timeslotsGenerated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.timeslotsRemoved))
}
