package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AdmissionDecisions *prometheus.CounterVec
	DedupEntries       prometheus.Gauge

	NotificationsTotal *prometheus.CounterVec
	NotifierQueueDepth prometheus.Gauge

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		AdmissionDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "admission_decisions_total",
			Help:        "Booking admission decisions by outcome and reason",
			ConstLabels: labels,
		}, []string{"outcome", "reason"}),

		DedupEntries: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "admission_dedup_entries",
			Help:        "Entries currently held by the in-memory deduplication window",
			ConstLabels: labels,
		}),

		NotificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "transition_notifications_total",
			Help:        "Transition notifications by result",
			ConstLabels: labels,
		}, []string{"result"}),

		NotifierQueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "transition_notifier_queue_depth",
			Help:        "Pending transition notifications",
			ConstLabels: labels,
		}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation", "status"}),

		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: labels,
		}),

		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: labels,
		}),

		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: labels,
		}),
	}
}

// ObserveAdmission фиксирует решение контроллера допуска
func (m *Metrics) ObserveAdmission(outcome, reason string) {
	if m == nil {
		return
	}
	m.AdmissionDecisions.WithLabelValues(outcome, reason).Inc()
}

// ObserveNotification фиксирует результат отправки уведомления о переходе статуса
func (m *Metrics) ObserveNotification(result string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(result).Inc()
}

// SetDedupEntries обновляет размер окна дедупликации
func (m *Metrics) SetDedupEntries(n int) {
	if m == nil {
		return
	}
	m.DedupEntries.Set(float64(n))
}

// SetNotifierQueueDepth обновляет глубину очереди уведомлений
func (m *Metrics) SetNotifierQueueDepth(n int) {
	if m == nil {
		return
	}
	m.NotifierQueueDepth.Set(float64(n))
}
