package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAdmission(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "test")

	m.ObserveAdmission("rejected", "duplicate_submission")
	m.ObserveAdmission("rejected", "duplicate_submission")
	m.ObserveAdmission("admitted", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AdmissionDecisions.WithLabelValues("rejected", "duplicate_submission")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdmissionDecisions.WithLabelValues("admitted", "")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAdmission("admitted", "")
		m.ObserveNotification("sent")
		m.SetDedupEntries(3)
		m.SetNotifierQueueDepth(1)
	})
}
