package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oauth_proxy"

// Recorder collects exchange outcomes and upstream latency. A nil *Recorder is valid
// and records nothing, so clients can be built without metrics in tests.
type Recorder struct {
	registry  *prometheus.Registry
	exchanges *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		exchanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchanges_total",
			Help:      "Upstream calls by provider, operation and outcome.",
		}, []string{"provider", "operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of upstream provider requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "operation"}),
	}
	r.registry.MustRegister(
		r.exchanges,
		r.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveExchange records one upstream call. outcome is "success" or an error kind name.
func (r *Recorder) ObserveExchange(provider, operation, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.exchanges.WithLabelValues(provider, operation, outcome).Inc()
	r.latency.WithLabelValues(provider, operation).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
