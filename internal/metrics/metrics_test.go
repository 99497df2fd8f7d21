package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAdmission(t *testing.T) {
	m := NewBookingMetricsWithRegisterer(prometheus.NewRegistry())

	m.RecordAdmission("create", "ok")
	m.RecordAdmission("create", "ok")
	m.RecordAdmission("create", "conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.admissions.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.admissions.WithLabelValues("create", "conflict")))
}

func TestSetRoomOccupancy(t *testing.T) {
	m := NewBookingMetricsWithRegisterer(prometheus.NewRegistry())

	m.SetRoomOccupancy("room-1", 4)
	m.SetRoomOccupancy("room-1", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.roomOccupied.WithLabelValues("room-1")))
}

func TestObserveLockWait(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewBookingMetricsWithRegisterer(registry)

	m.ObserveLockWait(10 * time.Millisecond)

	count, err := testutil.GatherAndCount(registry, "booking_lock_wait_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDoubleRegistrationReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := NewBookingMetricsWithRegisterer(registry)
	second := NewBookingMetricsWithRegisterer(registry)

	first.RecordAdmission("create", "ok")
	second.RecordAdmission("create", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(first.admissions.WithLabelValues("create", "ok")))
}
