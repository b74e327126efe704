package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - метрики поиска, жизненного цикла вызовов и рассылки оповещений.
// Все методы безопасны для nil-получателя, поэтому в тестах метрики можно не создавать.
type Metrics struct {
	SearchLatency      *prometheus.HistogramVec
	SearchCandidates   *prometheus.HistogramVec
	IncidentTransition *prometheus.CounterVec
	Notifications      *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SearchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emergency_geo_search_duration_seconds",
			Help:    "Duration of radius searches by index and outcome",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"index", "outcome"}),

		SearchCandidates: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emergency_geo_search_candidates",
			Help:    "Number of index entries scanned per radius search before distance filtering",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"index"}),

		IncidentTransition: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emergency_geo_incident_transitions_total",
			Help: "Incident state transitions by target state",
		}, []string{"state"}),

		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emergency_geo_notifications_total",
			Help: "Notification deliveries by result",
		}, []string{"result"}),
	}
}

// ObserveSearch записывает длительность поиска
func (m *Metrics) ObserveSearch(index, outcome string, d time.Duration) {
	if m != nil {
		m.SearchLatency.WithLabelValues(index, outcome).Observe(d.Seconds())
	}
}

// ObserveCandidates записывает число кандидатов до фильтрации по расстоянию
func (m *Metrics) ObserveCandidates(index string, n int) {
	if m != nil {
		m.SearchCandidates.WithLabelValues(index).Observe(float64(n))
	}
}

// IncrementTransition учитывает переход инцидента в состояние
func (m *Metrics) IncrementTransition(state string) {
	if m != nil {
		m.IncidentTransition.WithLabelValues(state).Inc()
	}
}

// AddNotifications учитывает итог рассылки
func (m *Metrics) AddNotifications(delivered, failed int) {
	if m != nil {
		m.Notifications.WithLabelValues("delivered").Add(float64(delivered))
		m.Notifications.WithLabelValues("failed").Add(float64(failed))
	}
}
