package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-метрик сервиса
// Каждый экземпляр держит собственный registry, поэтому New можно вызывать повторно (в тестах)
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	RuleStoreReloads *prometheus.CounterVec
	RuleStoreRules   *prometheus.GaugeVec
}

// New создает и регистрирует метрики с константной меткой service
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, nil),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, nil),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, nil),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, nil),
		RuleStoreReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_rule_store_reloads_total",
			Help:        "Availability rule store reloads by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		RuleStoreRules: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "availability_rule_store_rules",
			Help:        "Rules in the current availability snapshot by kind",
			ConstLabels: constLabels,
		}, []string{"kind"}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.RuleStoreReloads,
		m.RuleStoreRules,
	)

	return m
}

// Handler отдает метрики в формате prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает registry с метриками сервиса
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveRuleStoreReload фиксирует результат перезагрузки правил доступности
func (m *Metrics) ObserveRuleStoreReload(err error, weekdayRules, dateRules int) {
	if err != nil {
		m.RuleStoreReloads.WithLabelValues("error").Inc()
		return
	}
	m.RuleStoreReloads.WithLabelValues("ok").Inc()
	m.RuleStoreRules.WithLabelValues("weekday").Set(float64(weekdayRules))
	m.RuleStoreRules.WithLabelValues("specific_date").Set(float64(dateRules))
}
