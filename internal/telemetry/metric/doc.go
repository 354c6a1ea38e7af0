// Package metric provides Prometheus metrics for SkyWalker.
//
//   - prometheus.go: request, landmark and position metrics on a private registry
//   - collector.go: collector exposing the size of the tracking board
//
// Metrics are exposed at /metrics by `skywalker-cli track --metrics-listen`.
package metric
