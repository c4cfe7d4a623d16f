package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LotMetrics exposes the lot state as Prometheus gauges. It subscribes as a
// lot observer and refreshes its gauges from the service on each change.
type LotMetrics struct {
	parking *ParkingService

	capacity prometheus.Gauge
	occupied *prometheus.GaugeVec
	revenue  prometheus.Gauge
	notifies prometheus.Counter
}

func NewLotMetrics(parking *ParkingService, reg prometheus.Registerer) *LotMetrics {
	m := &LotMetrics{
		parking: parking,
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parking_lot_capacity",
			Help: "Total number of spots in the lot.",
		}),
		occupied: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "parking_lot_occupied_spots",
			Help: "Occupied spots by category.",
		}, []string{"category"}),
		revenue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parking_lot_revenue_total",
			Help: "Cumulative revenue collected, in RM.",
		}),
		notifies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parking_lot_change_notifications_total",
			Help: "Lot change notifications delivered to this exporter.",
		}),
	}
	reg.MustRegister(m.capacity, m.occupied, m.revenue, m.notifies)
	m.refresh()
	return m
}

var _ LotObserver = (*LotMetrics)(nil)

func (m *LotMetrics) OnLotChanged() {
	m.notifies.Inc()
	m.refresh()
}

func (m *LotMetrics) refresh() {
	status := m.parking.Status()
	m.capacity.Set(float64(status.Capacity))
	m.revenue.Set(status.Revenue)
	m.occupied.Reset()
	for category, count := range status.ByCategory {
		m.occupied.WithLabelValues(string(category)).Set(float64(count))
	}
}
