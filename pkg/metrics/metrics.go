package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics colectores Prometheus del servicio, en un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BackendCallsTotal   *prometheus.CounterVec
	BackendCallDuration *prometheus.HistogramVec

	LedgerMovementsTotal *prometheus.CounterVec
	LedgerOversellTotal  prometheus.Counter
}

// New registra los colectores bajo el namespace dado (ej. "backoffice").
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		BackendCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_calls_total",
			Help:      "Llamadas al backend REST por operación y resultado.",
		}, []string{"op", "outcome"}),
		BackendCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_call_duration_seconds",
			Help:      "Latencia de las llamadas al backend REST.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"op"}),
		LedgerMovementsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_movements_total",
			Help:      "Movimientos confirmados en el ledger por tipo.",
		}, []string{"kind"}),
		LedgerOversellTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_oversell_total",
			Help:      "Ventas registradas por encima del stock disponible.",
		}),
	}
	registry.MustRegister(
		m.HTTPRequestsTotal, m.HTTPRequestDuration,
		m.BackendCallsTotal, m.BackendCallDuration,
		m.LedgerMovementsTotal, m.LedgerOversellTotal,
	)
	return m
}

// Registry registro subyacente (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest registra una petición atendida. path debe ser el patrón de ruta.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// ObserveBackendCall registra una llamada al backend. outcome: ok | api_error | unavailable.
func (m *Metrics) ObserveBackendCall(op, outcome string, d time.Duration) {
	m.BackendCallsTotal.WithLabelValues(op, outcome).Inc()
	m.BackendCallDuration.WithLabelValues(op).Observe(d.Seconds())
}

// ObserveMovement registra un movimiento del ledger.
func (m *Metrics) ObserveMovement(kind string, oversold bool) {
	m.LedgerMovementsTotal.WithLabelValues(kind).Inc()
	if oversold {
		m.LedgerOversellTotal.Inc()
	}
}
