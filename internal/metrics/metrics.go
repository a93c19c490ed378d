package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters.
type Metrics struct {
	rpcRequests    *prometheus.CounterVec
	rpcErrors      prometheus.Counter
	logsDecoded    prometheus.Counter
	logsUnresolved prometheus.Counter
	decodeFailures prometheus.Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// Init initializes global metrics (idempotent).
func Init() *Metrics {
	once.Do(func() {
		metrics = &Metrics{
			rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "abiwire_rpc_requests_total",
				Help: "Total number of RPC requests, by method",
			}, []string{"method"}),
			rpcErrors: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "abiwire_rpc_errors_total",
				Help: "Total number of failed RPC requests",
			}),
			logsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "abiwire_logs_decoded_total",
				Help: "Total number of logs decoded against a known event",
			}),
			logsUnresolved: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "abiwire_logs_unresolved_total",
				Help: "Total number of logs with no matching event signature",
			}),
			decodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "abiwire_log_decode_failures_total",
				Help: "Total number of logs that failed to decode",
			}),
		}
		prometheus.MustRegister(
			metrics.rpcRequests,
			metrics.rpcErrors,
			metrics.logsDecoded,
			metrics.logsUnresolved,
			metrics.decodeFailures,
		)
	})
	return metrics
}

// ObserveRequest records one completed RPC request. Satisfies rpc.Recorder.
func (m *Metrics) ObserveRequest(method string, err error) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(method).Inc()
	if err != nil {
		m.rpcErrors.Inc()
	}
}

// LogDecoded increments the decoded-log counter.
func (m *Metrics) LogDecoded() {
	if m != nil {
		m.logsDecoded.Inc()
	}
}

// LogUnresolved increments the unresolved-log counter.
func (m *Metrics) LogUnresolved() {
	if m != nil {
		m.logsUnresolved.Inc()
	}
}

// DecodeFailed increments the decode-failure counter.
func (m *Metrics) DecodeFailed() {
	if m != nil {
		m.decodeFailures.Inc()
	}
}

// Handler returns an HTTP handler for /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
