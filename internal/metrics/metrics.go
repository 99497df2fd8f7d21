package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics collects counters around the admission path.
type BookingMetrics struct {
	admissions   *prometheus.CounterVec
	lockWait     prometheus.Histogram
	roomOccupied *prometheus.GaugeVec
}

// NewBookingMetrics registers the booking collectors on the default
// registerer. Double registration (tests, restarts of the wiring) reuses
// the existing collector.
func NewBookingMetrics() *BookingMetrics {
	return NewBookingMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewBookingMetricsWithRegisterer(registerer prometheus.Registerer) *BookingMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &BookingMetrics{
		admissions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "booking_admissions_total",
			Help: "Admission attempts by operation and outcome",
		}, []string{"operation", "outcome"}),
		lockWait: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "booking_lock_wait_seconds",
			Help:    "Time spent waiting for the admission lock",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		roomOccupied: registerGaugeVec(registerer, prometheus.GaugeOpts{
			Name: "booking_room_active_reservations",
			Help: "Active upcoming reservations per room",
		}, []string{"room_id"}),
	}
}

// RecordAdmission counts one finished admission attempt.
func (m *BookingMetrics) RecordAdmission(operation, outcome string) {
	m.admissions.WithLabelValues(operation, outcome).Inc()
}

// ObserveLockWait records how long an admission waited for its lock.
func (m *BookingMetrics) ObserveLockWait(d time.Duration) {
	m.lockWait.Observe(d.Seconds())
}

// SetRoomOccupancy publishes the stats-job snapshot for one room.
func (m *BookingMetrics) SetRoomOccupancy(roomID string, active int) {
	m.roomOccupied.WithLabelValues(roomID).Set(float64(active))
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGaugeVec(registerer prometheus.Registerer, opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	collector := prometheus.NewGaugeVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.GaugeVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
