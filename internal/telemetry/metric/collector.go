// Package metric provides Prometheus metrics for SkyWalker.
package metric

import "github.com/prometheus/client_golang/prometheus"

// BoardCollector reports how many tags currently have a known position.
// The count is read at scrape time.
type BoardCollector struct {
	count func() int
	desc  *prometheus.Desc
}

// NewBoardCollector creates a collector backed by count.
func NewBoardCollector(count func() int) *BoardCollector {
	return &BoardCollector{
		count: count,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "tracked_tags"),
			"Tags with a known position on the tracking board.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *BoardCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *BoardCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.count()))
}
