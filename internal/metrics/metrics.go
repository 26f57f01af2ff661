package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry - выделенный реестр Prometheus сервиса. Отдаётся на /metrics,
	// глобальный реестр клиентской библиотеки не используется.
	Registry = prometheus.NewRegistry()

	// HTTPRequests считает HTTP-запросы по методу, шаблону пути и статусу
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration - длительность HTTP-запросов в секундах
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// CacheLookups считает обращения к кэшу геокодинга: result = hit | miss
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "geocode_cache_lookups_total", Help: "Geocode cache lookups by result."},
		[]string{"result"},
	)

	// GeocodeRequests считает вызовы провайдеров геокодинга:
	// status = ok | empty | rate_limited | error
	GeocodeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "geocoder_requests_total", Help: "Geocoding provider calls by provider and outcome."},
		[]string{"provider", "status"},
	)

	// GeocodeDuration - длительность вызовов провайдеров геокодинга в секундах
	GeocodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "geocoder_request_duration_seconds", Help: "Geocoding provider call duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"provider"},
	)

	// TableCalls считает bulk table-вызовы маршрутизации: status = ok | error
	TableCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routing_table_calls_total", Help: "Bulk distance table calls by outcome."},
		[]string{"status"},
	)

	// PairwiseCalls считает парные добивки матрицы: status = ok | unreachable
	PairwiseCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routing_pairwise_calls_total", Help: "Pairwise fallback route calls by outcome."},
		[]string{"status"},
	)

	// SolverRuns считает запуски солвера по алгоритму
	SolverRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "solver_runs_total", Help: "Route solver runs by algorithm."},
		[]string{"algorithm"},
	)

	// SolverDuration - длительность работы солвера в секундах
	SolverDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "solver_duration_seconds", Help: "Route solver duration in seconds.", Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10}},
		[]string{"algorithm"},
	)

	// WorkerEvents считает события асинхронной оптимизации:
	// status = ok | failed | poison
	WorkerEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "worker_events_total", Help: "Async route optimization events by outcome."},
		[]string{"status"},
	)
)

var regOnce sync.Once

// RegisterDefault регистрирует все коллекторы в реестре сервиса.
// Повторные вызовы безопасны.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(CacheLookups)
		Registry.MustRegister(GeocodeRequests)
		Registry.MustRegister(GeocodeDuration)
		Registry.MustRegister(TableCalls)
		Registry.MustRegister(PairwiseCalls)
		Registry.MustRegister(SolverRuns)
		Registry.MustRegister(SolverDuration)
		Registry.MustRegister(WorkerEvents)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
