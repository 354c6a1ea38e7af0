// Package metric provides Prometheus metrics for SkyWalker.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "skywalker"

// Request outcomes used as the "outcome" label.
const (
	OutcomeSuccess  = "success"
	OutcomeNoUpdate = "no_update"
)

// Position update results used as the "result" label.
const (
	PositionUpdated   = "updated"
	PositionUnchanged = "unchanged"
	PositionFailed    = "failed"
)

// Registry holds all client metrics. A nil *Registry is valid and records nothing.
type Registry struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	LandmarksLoaded prometheus.Gauge
	PositionUpdates *prometheus.CounterVec
}

// NewRegistry creates the metrics and registers them, together with the Go
// runtime collectors, on a private registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests issued by the client, by operation and outcome (success or error kind).",
		}, []string{"operation", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of client requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		LandmarksLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "landmarks_loaded",
			Help:      "Landmarks in the active center's directory.",
		}),
		PositionUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "position_updates_total",
			Help:      "Tracking poll results.",
		}, []string{"result"}),
	}

	r.registry.MustRegister(
		r.RequestsTotal,
		r.RequestDuration,
		r.LandmarksLoaded,
		r.PositionUpdates,
		collectors.NewGoCollector(),
	)
	return r
}

// ObserveRequest records one completed request.
func (r *Registry) ObserveRequest(operation, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.RequestsTotal.WithLabelValues(operation, outcome).Inc()
	r.RequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetLandmarks records the size of the active landmark directory.
func (r *Registry) SetLandmarks(n int) {
	if r == nil {
		return
	}
	r.LandmarksLoaded.Set(float64(n))
}

// PositionUpdate counts one tracking poll result.
func (r *Registry) PositionUpdate(result string) {
	if r == nil {
		return
	}
	r.PositionUpdates.WithLabelValues(result).Inc()
}

// Register adds an extra collector to the registry.
func (r *Registry) Register(c prometheus.Collector) error {
	if r == nil {
		return nil
	}
	return r.registry.Register(c)
}

// Unregister removes a collector added with Register.
func (r *Registry) Unregister(c prometheus.Collector) bool {
	if r == nil {
		return false
	}
	return r.registry.Unregister(c)
}

// Gatherer exposes the underlying registry, mainly for tests. A nil
// Registry gathers nothing.
func (r *Registry) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.Gatherers{}
	}
	return r.registry
}

// Handler returns an HTTP handler serving the registry in Prometheus format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Gatherer(), promhttp.HandlerOpts{})
}
