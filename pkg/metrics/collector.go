package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/flowforge/diskgate/pkg/capacity"
)

// CapacityCollector probes a fixed set of paths on every scrape. Samples are
// never cached between scrapes.
type CapacityCollector struct {
	prober capacity.Prober
	paths  []string
	logger *zap.Logger

	available *prometheus.Desc
	total     *prometheus.Desc
	up        *prometheus.Desc
}

func NewCapacityCollector(prober capacity.Prober, paths []string, logger *zap.Logger) *CapacityCollector {
	return &CapacityCollector{
		prober: prober,
		paths:  paths,
		logger: logger,
		available: prometheus.NewDesc(
			"diskgate_filesystem_available_bytes",
			"Bytes available to unprivileged tasks on the filesystem backing path.",
			[]string{"path"}, nil,
		),
		total: prometheus.NewDesc(
			"diskgate_filesystem_total_bytes",
			"Total bytes of the filesystem backing path.",
			[]string{"path"}, nil,
		),
		up: prometheus.NewDesc(
			"diskgate_filesystem_probe_up",
			"Whether the last capacity probe of path succeeded.",
			[]string{"path"}, nil,
		),
	}
}

func (c *CapacityCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.available
	ch <- c.total
	ch <- c.up
}

func (c *CapacityCollector) Collect(ch chan<- prometheus.Metric) {
	for _, path := range c.paths {
		sample, err := c.prober.Probe(path)
		if err != nil {
			c.logger.Warn("capacity probe failed during scrape", zap.String("path", path), zap.Error(err))
			ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 0, path)
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 1, path)
		ch <- prometheus.MustNewConstMetric(c.available, prometheus.GaugeValue, float64(sample.AvailableBytes), path)
		ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(sample.TotalBytes), path)
	}
}
